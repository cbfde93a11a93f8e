package timing

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Evaluator computes how long a timing tree keeps a viewer watching, in
// milliseconds. It holds no state between calls; the logger only receives
// the per-node trace and warnings about element kinds it does not count.
type Evaluator struct {
	log logrus.FieldLogger
}

// NewEvaluator returns an evaluator logging to log. A nil logger discards
// diagnostics.
func NewEvaluator(log logrus.FieldLogger) *Evaluator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Evaluator{log: log}
}

// AnimationDuration returns the play time of a slide's timing tree as built
// by Build. A nil root means the slide has no animation.
//
// The main sequence's children are summed directly rather than combined by
// the child list rule: rendered output shows them as parallel nodes playing
// one after another, even though a sequence would be the natural container.
func (e *Evaluator) AnimationDuration(root *TimeNode) (int, error) {
	if root == nil {
		return 0, nil
	}
	rootPath := childPath("tnLst", root.Name(), 0)
	if err := checkRoot(*root, rootPath); err != nil {
		return 0, err
	}

	mainSeq := root.Common.Children[0]
	seqPath := childPath(rootPath, mainSeq.Name(), 0)

	total := 0
	for i, child := range mainSeq.Common.Children {
		path := childPath(seqPath, child.Name(), i)
		if child.Kind != KindParallel {
			e.log.WithField("path", path).Warnf("skipping %s directly under the main sequence", child.Name())
			continue
		}
		d, err := e.evaluate(child, path, 1)
		if err != nil {
			return 0, err
		}
		total += d
	}
	e.log.Debugf("animations: %d ms", total)
	return total, nil
}

// Evaluate returns the contribution of a single node and its subtree.
func (e *Evaluator) Evaluate(node TimeNode) (int, error) {
	return e.evaluate(node, node.Name(), 0)
}

// evaluate dispatches on the node kind. depth only indents the trace.
func (e *Evaluator) evaluate(node TimeNode, path string, depth int) (int, error) {
	var (
		d   int
		err error
	)
	switch node.Kind {
	case KindParallel, KindSetBehavior, KindAnimateEffect, KindAnimateMotion, KindAnimateRotation, KindAnimateScale:
		d, err = e.evaluateCommon(node, path, depth)
	case KindSequence:
		d, err = e.evaluateCommon(node, path, depth)
		d += node.PrevConditions.Delay() + node.NextConditions.Delay()
	case KindAnimateColor:
		// The set behavior paired with a color animation already covers
		// its visible time.
		d = 0
	case KindAnimate:
		d = 0
	default:
		e.log.WithFields(logrus.Fields{
			"path":    path,
			"element": node.RawName,
		}).Warn("unrecognized timing element, counted as 0 ms")
		d = 0
	}
	if err != nil {
		return 0, err
	}

	e.trace(node, path, depth, d)
	return d, nil
}

// evaluateCommon computes start + repeat*(own + children) + end for the
// node's common time node. The repeat count is in thousandths and truncated
// to a whole multiplier, so anything below 1000 silences the node.
func (e *Evaluator) evaluateCommon(node TimeNode, path string, depth int) (int, error) {
	c := node.Common
	if c == nil {
		return 0, malformed(path, "%s has no common time node", node.Name())
	}

	own := 0
	if c.DurationMs != nil {
		own = *c.DurationMs
	}
	kids, err := e.evaluateChildren(c.Children, path, depth+1)
	if err != nil {
		return 0, err
	}
	if own != 0 && kids != 0 {
		return 0, malformed(path, "explicit duration of %d ms alongside %d ms of child time nodes", own, kids)
	}

	repeat := 1000
	if c.RepeatCountPermille != nil {
		repeat = *c.RepeatCountPermille
	}
	repeat /= 1000

	return c.StartConditions.Delay() + repeat*(own+kids) + c.EndConditions.Delay(), nil
}

// evaluateChildren combines a child list: parallel siblings overlap (max),
// sequence siblings follow each other (sum), and anything else is summed.
func (e *Evaluator) evaluateChildren(children []TimeNode, path string, depth int) (int, error) {
	if len(children) == 0 {
		return 0, nil
	}

	pars, seqs := 0, 0
	for _, child := range children {
		switch child.Kind {
		case KindParallel:
			pars++
		case KindSequence:
			seqs++
		}
	}

	if pars > 0 && seqs > 0 {
		e.log.WithField("path", path).Warnf("unhandled schema shape: %d par and %d seq siblings, summing them", pars, seqs)
	}

	combined := 0
	for i, child := range children {
		d, err := e.evaluate(child, childPath(path, child.Name(), i), depth)
		if err != nil {
			return 0, err
		}
		if pars == len(children) {
			combined = max(combined, d)
		} else {
			combined += d
		}
	}
	return combined, nil
}

func (e *Evaluator) trace(node TimeNode, path string, depth int, d int) {
	id := ""
	if node.Common != nil && node.Common.ID != "" {
		id = " #" + node.Common.ID
	}
	e.log.WithField("path", path).Debugf("%s%s%s: %d ms", strings.Repeat("  ", depth), node.Name(), id, d)
}
