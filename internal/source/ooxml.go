package source

import (
	"encoding/xml"
	"io"
)

// Element views of the PresentationML timing schema. Only the parts that
// influence playback duration are mapped; everything else is skipped by the
// decoder.
//
// http://www.datypic.com/sc/ooxml/t-p_CT_SlideTiming.html

// TimingElement mirrors p:timing.
type TimingElement struct {
	TnLst *TimeNodeList `xml:"tnLst"`
}

// TimeNodeList mirrors p:tnLst and p:childTnLst. The schema allows any mix of
// time node kinds as children, so the list keeps them in document order
// together with their element names.
type TimeNodeList struct {
	Nodes []TimeNodeElement
}

// UnmarshalXML decodes every child element into a TimeNodeElement, keeping
// document order.
func (l *TimeNodeList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var el TimeNodeElement
			if err := d.DecodeElement(&el, &t); err != nil {
				return err
			}
			el.Name = t.Name.Local
			l.Nodes = append(l.Nodes, el)
		case xml.EndElement:
			return nil
		}
	}
}

// TimeNodeElement is one child of a time node list: p:par, p:seq, p:set,
// p:anim*, p:cmd, p:excl, p:audio or p:video. Containers carry their
// p:cTn directly, behaviors carry it under p:cBhvr.
type TimeNodeElement struct {
	Name        string                 `xml:"-"`
	CTn         *CommonTimeNodeElement `xml:"cTn"`
	CBhvr       *CommonBehaviorElement `xml:"cBhvr"`
	PrevCondLst *ConditionListElement  `xml:"prevCondLst"`
	NextCondLst *ConditionListElement  `xml:"nextCondLst"`
}

// Common returns the element's common time node, wherever the kind keeps it.
func (e TimeNodeElement) Common() *CommonTimeNodeElement {
	if e.CTn != nil {
		return e.CTn
	}
	if e.CBhvr != nil {
		return e.CBhvr.CTn
	}
	return nil
}

// CommonBehaviorElement mirrors p:cBhvr.
type CommonBehaviorElement struct {
	CTn *CommonTimeNodeElement `xml:"cTn"`
}

// CommonTimeNodeElement mirrors p:cTn.
// http://www.datypic.com/sc/ooxml/e-p_cTn-1.html
type CommonTimeNodeElement struct {
	ID          string                `xml:"id,attr"`
	Dur         *string               `xml:"dur,attr"`
	NodeType    string                `xml:"nodeType,attr"`
	PresetClass string                `xml:"presetClass,attr"`
	RepeatCount *string               `xml:"repeatCount,attr"`
	StCondLst   *ConditionListElement `xml:"stCondLst"`
	EndCondLst  *ConditionListElement `xml:"endCondLst"`
	ChildTnLst  *TimeNodeList         `xml:"childTnLst"`
}

// ConditionListElement mirrors p:stCondLst, p:endCondLst, p:prevCondLst and
// p:nextCondLst.
type ConditionListElement struct {
	Conds []ConditionElement `xml:"cond"`
}

// ConditionElement mirrors p:cond.
type ConditionElement struct {
	Evt   string  `xml:"evt,attr"`
	Delay *string `xml:"delay,attr"`
}

// TransitionElement mirrors p:transition. The duration lives in the p14
// namespace (p14:dur), so the attribute is matched by local name only.
type TransitionElement struct {
	Dur      *string `xml:"dur,attr"`
	AdvTm    *string `xml:"advTm,attr"`
	AdvClick string  `xml:"advClick,attr"`
	Spd      string  `xml:"spd,attr"`
}

// Package parts.

type presentationElement struct {
	SldIdLst *struct {
		SldIds []slideIDElement `xml:"sldId"`
	} `xml:"sldIdLst"`
}

type slideIDElement struct {
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type relationshipsElement struct {
	Rels []relationshipElement `xml:"Relationship"`
}

type relationshipElement struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}
