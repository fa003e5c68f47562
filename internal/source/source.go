// Package source acquires frame snapshots for the scan pipeline: single
// image files, directories of capture dumps, or rasterized pages of scanned
// tracing-sheet PDFs. Every RenderPage result is an owned, immutable
// snapshot; no live capture buffer ever reaches the pipeline.
package source

import (
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source yields frame snapshots page by page.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks a source implementation from the path: PDFs go through the
// fitz rasterizer, everything else through the image decoder.
func Open(path string) (Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewFitzPDFSource(path)
	}
	return NewImageSource(path)
}

// FitzPDFSource rasterizes pages of a scanned tracing-sheet PDF.
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// RenderPage opens a private document handle per call so concurrent batch
// workers never share fitz state.
func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
