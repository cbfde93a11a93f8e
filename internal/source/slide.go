package source

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Slide is the read-only view of one slide part that the duration
// calculator needs.
type Slide struct {
	Number      int    // 1-based position in the presentation
	Part        string // package part name, e.g. ppt/slides/slide1.xml
	Transitions []TransitionElement
	Timing      *TimingElement // nil when the slide has no p:timing
}

// DecodeSlide reads a slide part and collects every p:transition, wherever it
// sits (a slide saved by a recent editor carries one inside mc:Choice and
// another inside mc:Fallback), and the slide's p:timing section.
func DecodeSlide(r io.Reader) (transitions []TransitionElement, timing *TimingElement, err error) {
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return transitions, timing, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("decode slide: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "transition":
			var tr TransitionElement
			if err := d.DecodeElement(&tr, &start); err != nil {
				return nil, nil, fmt.Errorf("decode transition: %w", err)
			}
			transitions = append(transitions, tr)
		case "timing":
			if timing != nil {
				if err := d.Skip(); err != nil {
					return nil, nil, fmt.Errorf("decode timing: %w", err)
				}
				continue
			}
			timing = &TimingElement{}
			if err := d.DecodeElement(timing, &start); err != nil {
				return nil, nil, fmt.Errorf("decode timing: %w", err)
			}
		}
	}
}
