package timing

import (
	"github.com/ticapix/pptx-to-course/internal/source"
)

// Build projects a slide's p:timing section into a TimeNode tree rooted at
// the tmRoot parallel node. It returns nil, nil for a slide without timing.
func Build(el *source.TimingElement) (*TimeNode, error) {
	if el == nil || el.TnLst == nil || len(el.TnLst.Nodes) == 0 {
		return nil, nil
	}
	if n := len(el.TnLst.Nodes); n > 1 {
		return nil, malformed("tnLst", "expected a single root time node, found %d", n)
	}

	rootEl := el.TnLst.Nodes[0]
	path := childPath("tnLst", rootEl.Name, 0)
	root, err := buildNode(rootEl, path)
	if err != nil {
		return nil, err
	}
	if err := checkRoot(root, path); err != nil {
		return nil, err
	}
	return &root, nil
}

// checkRoot enforces the only shape the evaluator accepts at the top of the
// tree: a tmRoot parallel node without conditions whose single child is the
// mainSeq sequence.
func checkRoot(root TimeNode, path string) error {
	if root.Kind != KindParallel || root.Common == nil {
		return malformed(path, "root time node is %s, expected par", root.Name())
	}
	if root.Common.NodeType != NodeTypeRoot {
		return malformed(path, "root nodeType is %q, expected %q", root.Common.NodeType, NodeTypeRoot)
	}
	if len(root.Common.StartConditions) > 0 || len(root.Common.EndConditions) > 0 {
		return malformed(path, "root time node carries conditions")
	}
	if n := len(root.Common.Children); n != 1 {
		return malformed(path, "root time node has %d children, expected 1", n)
	}

	main := root.Common.Children[0]
	mainPath := childPath(path, main.Name(), 0)
	if main.Kind != KindSequence || main.Common == nil {
		return malformed(mainPath, "main time node is %s, expected seq", main.Name())
	}
	if main.Common.NodeType != NodeTypeMainSequence {
		return malformed(mainPath, "main sequence nodeType is %q, expected %q", main.Common.NodeType, NodeTypeMainSequence)
	}
	return nil
}

func buildNode(el source.TimeNodeElement, path string) (TimeNode, error) {
	kind := KindOf(el.Name)
	switch kind {
	case KindUnknown:
		return TimeNode{Kind: KindUnknown, RawName: el.Name}, nil
	case KindAnimate:
		return TimeNode{Kind: KindAnimate}, nil
	}

	ctn := el.Common()
	if ctn == nil {
		return TimeNode{}, malformed(path, "%s has no common time node", el.Name)
	}
	common, err := buildCommon(ctn, path)
	if err != nil {
		return TimeNode{}, err
	}

	node := TimeNode{Kind: kind, Common: common}
	if kind == KindSequence {
		node.PrevConditions = buildConditions(el.PrevCondLst)
		node.NextConditions = buildConditions(el.NextCondLst)
	}
	return node, nil
}

func buildCommon(ctn *source.CommonTimeNodeElement, path string) (*CommonTimeNode, error) {
	common := &CommonTimeNode{
		ID:                  ctn.ID,
		NodeType:            NodeType(ctn.NodeType),
		DurationMs:          source.IntAttr(ctn.Dur),
		StartConditions:     buildConditions(ctn.StCondLst),
		EndConditions:       buildConditions(ctn.EndCondLst),
		RepeatCountPermille: source.IntAttr(ctn.RepeatCount),
	}
	if ctn.ChildTnLst == nil {
		return common, nil
	}

	common.Children = make([]TimeNode, 0, len(ctn.ChildTnLst.Nodes))
	for i, childEl := range ctn.ChildTnLst.Nodes {
		child, err := buildNode(childEl, childPath(path, childEl.Name, i))
		if err != nil {
			return nil, err
		}
		common.Children = append(common.Children, child)
	}
	return common, nil
}

func buildConditions(list *source.ConditionListElement) ConditionList {
	if list == nil {
		return nil
	}
	conds := make(ConditionList, 0, len(list.Conds))
	for _, c := range list.Conds {
		conds = append(conds, Condition{Event: c.Evt, DelayMs: source.IntAttr(c.Delay)})
	}
	return conds
}
