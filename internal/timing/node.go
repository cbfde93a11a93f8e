// Package timing models a slide's animation timing tree and computes how long
// it plays.
package timing

// Kind tags the variant of a TimeNode.
type Kind int

const (
	KindUnknown Kind = iota
	KindParallel
	KindSequence
	KindSetBehavior
	KindAnimateEffect
	KindAnimateMotion
	KindAnimateRotation
	KindAnimateScale
	KindAnimateColor
	KindAnimate
)

var kindElements = map[string]Kind{
	"par":        KindParallel,
	"seq":        KindSequence,
	"set":        KindSetBehavior,
	"animEffect": KindAnimateEffect,
	"animMotion": KindAnimateMotion,
	"animRot":    KindAnimateRotation,
	"animScale":  KindAnimateScale,
	"animClr":    KindAnimateColor,
	"anim":       KindAnimate,
}

// KindOf maps a PresentationML element name to its node kind.
func KindOf(element string) Kind {
	if k, ok := kindElements[element]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindParallel:
		return "par"
	case KindSequence:
		return "seq"
	case KindSetBehavior:
		return "set"
	case KindAnimateEffect:
		return "animEffect"
	case KindAnimateMotion:
		return "animMotion"
	case KindAnimateRotation:
		return "animRot"
	case KindAnimateScale:
		return "animScale"
	case KindAnimateColor:
		return "animClr"
	case KindAnimate:
		return "anim"
	default:
		return "unknown"
	}
}

// NodeType is the p:cTn nodeType attribute.
type NodeType string

const (
	NodeTypeRoot           NodeType = "tmRoot"
	NodeTypeMainSequence   NodeType = "mainSeq"
	NodeTypeInteractiveSeq NodeType = "interactiveSeq"
	NodeTypeClickPar       NodeType = "clickPar"
	NodeTypeWithGroup      NodeType = "withGroup"
	NodeTypeAfterGroup     NodeType = "afterGroup"
	NodeTypeClickEffect    NodeType = "clickEffect"
	NodeTypeWithEffect     NodeType = "withEffect"
	NodeTypeAfterEffect    NodeType = "afterEffect"
)

// Condition is one p:cond entry. Only its delay matters for duration.
type Condition struct {
	Event   string
	DelayMs *int
}

type ConditionList []Condition

// Delay sums the delays of every condition. A nil list delays nothing.
func (l ConditionList) Delay() int {
	total := 0
	for _, c := range l {
		if c.DelayMs != nil {
			total += *c.DelayMs
		}
	}
	return total
}

// CommonTimeNode holds the fields every timing primitive shares.
type CommonTimeNode struct {
	ID                  string
	NodeType            NodeType
	DurationMs          *int
	StartConditions     ConditionList
	EndConditions       ConditionList
	Children            []TimeNode
	RepeatCountPermille *int // 2000 means "play twice"
}

// TimeNode is a tagged union over the timing primitives. Common is set for
// every kind except Animate and Unknown; PrevConditions and NextConditions
// only for sequences; RawName only for Unknown.
type TimeNode struct {
	Kind           Kind
	Common         *CommonTimeNode
	PrevConditions ConditionList
	NextConditions ConditionList
	RawName        string
}

// Name is the element name the node was built from.
func (n TimeNode) Name() string {
	if n.Kind == KindUnknown {
		return n.RawName
	}
	return n.Kind.String()
}
