package source

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrDocumentUnavailable marks a presentation package that could not be opened
// or read.
var ErrDocumentUnavailable = errors.New("document unavailable")

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

type Source interface {
	Path() string
	SlideCount() int
	Slides() ([]Slide, error)
	Close() error
}

// PPTXSource reads slides from an Office Open XML presentation package.
type PPTXSource struct {
	path  string
	zr    *zip.ReadCloser
	parts []string // slide part names in presentation order
}

func NewPPTXSource(path string) (*PPTXSource, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	s := &PPTXSource{path: path, zr: zr}
	parts, err := s.slideParts()
	if err != nil {
		zr.Close()
		return nil, unavailable(path, err)
	}
	s.parts = parts
	return s, nil
}

func unavailable(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDocumentUnavailable, path, err)
}

func (s *PPTXSource) Path() string {
	return s.path
}

func (s *PPTXSource) SlideCount() int {
	return len(s.parts)
}

// Slides decodes every slide in presentation order.
func (s *PPTXSource) Slides() ([]Slide, error) {
	slides := make([]Slide, 0, len(s.parts))
	for i, part := range s.parts {
		f, err := s.zr.Open(part)
		if err != nil {
			return nil, unavailable(s.path, err)
		}
		transitions, timing, err := DecodeSlide(f)
		f.Close()
		if err != nil {
			return nil, unavailable(s.path, fmt.Errorf("%s: %w", part, err))
		}
		slides = append(slides, Slide{
			Number:      i + 1,
			Part:        part,
			Transitions: transitions,
			Timing:      timing,
		})
	}
	return slides, nil
}

func (s *PPTXSource) Close() error {
	return s.zr.Close()
}

// slideParts resolves p:sldIdLst through the presentation relationships.
func (s *PPTXSource) slideParts() ([]string, error) {
	var pres presentationElement
	if err := s.decodePart(presentationPart, &pres); err != nil {
		return nil, err
	}
	if pres.SldIdLst == nil || len(pres.SldIdLst.SldIds) == 0 {
		return nil, nil
	}

	var rels relationshipsElement
	if err := s.decodePart(presentationRels, &rels); err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels.Rels))
	for _, rel := range rels.Rels {
		targets[rel.ID] = rel.Target
	}

	parts := make([]string, 0, len(pres.SldIdLst.SldIds))
	for _, id := range pres.SldIdLst.SldIds {
		target, ok := targets[id.RID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found in %s", id.RID, presentationRels)
		}
		parts = append(parts, resolveTarget(target))
	}
	return parts, nil
}

func (s *PPTXSource) decodePart(name string, v any) error {
	f, err := s.zr.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// resolveTarget turns a relationship target of ppt/presentation.xml into a
// package part name. Targets are relative to ppt/ unless absolute.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join("ppt", target)
}
