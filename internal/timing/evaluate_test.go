package timing

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(v int) *int { return &v }

func leaf(kind Kind, dur int) TimeNode {
	return TimeNode{Kind: kind, Common: &CommonTimeNode{DurationMs: ms(dur)}}
}

func par(children ...TimeNode) TimeNode {
	return TimeNode{Kind: KindParallel, Common: &CommonTimeNode{Children: children}}
}

func seq(children ...TimeNode) TimeNode {
	return TimeNode{Kind: KindSequence, Common: &CommonTimeNode{Children: children}}
}

func slideTree(mainChildren ...TimeNode) *TimeNode {
	main := seq(mainChildren...)
	main.Common.NodeType = NodeTypeMainSequence
	main.PrevConditions = ConditionList{{Event: "onPrev", DelayMs: ms(0)}}
	main.NextConditions = ConditionList{{Event: "onNext", DelayMs: ms(0)}}
	root := par(main)
	root.Common.NodeType = NodeTypeRoot
	return &root
}

func TestAnimationDurationWithoutTiming(t *testing.T) {
	d, err := NewEvaluator(nil).AnimationDuration(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

func TestEvaluateChildLists(t *testing.T) {
	tests := []struct {
		name string
		node TimeNode
		want int
	}{
		{
			name: "parallel siblings take the longest",
			node: par(par(leaf(KindSetBehavior, 300)), par(leaf(KindAnimateEffect, 500)), par(leaf(KindAnimateScale, 100))),
			want: 500,
		},
		{
			name: "sequence siblings add up",
			node: par(seq(leaf(KindSetBehavior, 300)), seq(leaf(KindAnimateEffect, 500))),
			want: 800,
		},
		{
			name: "mixed primitives add up",
			node: par(leaf(KindSetBehavior, 800), leaf(KindAnimateEffect, 1200)),
			want: 2000,
		},
		{
			name: "every leaf behavior counts its own duration",
			node: par(leaf(KindAnimateMotion, 10), leaf(KindAnimateRotation, 20), leaf(KindAnimateScale, 30)),
			want: 60,
		},
		{
			name: "color animation never counts",
			node: par(leaf(KindAnimateColor, 5000), leaf(KindSetBehavior, 1)),
			want: 1,
		},
		{
			name: "animate and unknown elements count as zero",
			node: par(TimeNode{Kind: KindAnimate}, TimeNode{Kind: KindUnknown, RawName: "cmd"}, leaf(KindSetBehavior, 250)),
			want: 250,
		},
		{
			name: "empty container",
			node: par(),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewEvaluator(nil).Evaluate(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestEvaluateParallelIsBoundedByChildren(t *testing.T) {
	durations := []int{120, 940, 0, 333, 940, 17}
	var children []TimeNode
	for _, d := range durations {
		children = append(children, par(leaf(KindAnimateEffect, d)))
	}

	got, err := NewEvaluator(nil).Evaluate(par(children...))
	require.NoError(t, err)

	for _, d := range durations {
		assert.GreaterOrEqual(t, got, d)
	}
	assert.Equal(t, 940, got)
}

func TestEvaluateConditionsAndRepeat(t *testing.T) {
	withRepeat := func(permille, dur int, start, end ConditionList) TimeNode {
		n := leaf(KindAnimateEffect, dur)
		n.Common.RepeatCountPermille = ms(permille)
		n.Common.StartConditions = start
		n.Common.EndConditions = end
		return n
	}

	tests := []struct {
		name string
		node TimeNode
		want int
	}{
		{"repeat twice", withRepeat(2000, 400, nil, nil), 800},
		{"fractional repeat truncates", withRepeat(2500, 400, nil, nil), 800},
		{"repeat below one collapses to zero", withRepeat(500, 400, nil, nil), 0},
		{"indefinite repeat coerced to zero", withRepeat(0, 400, nil, nil), 0},
		{
			name: "conditions are not repeated",
			node: withRepeat(2000, 400, ConditionList{{DelayMs: ms(100)}, {DelayMs: nil}}, ConditionList{{DelayMs: ms(50)}}),
			want: 100 + 800 + 50,
		},
		{
			name: "repeat applies to children",
			node: func() TimeNode {
				n := par(leaf(KindSetBehavior, 300), leaf(KindAnimateEffect, 200))
				n.Common.RepeatCountPermille = ms(3000)
				return n
			}(),
			want: 1500,
		},
		{
			name: "sequence adds previous and next conditions",
			node: func() TimeNode {
				n := seq(leaf(KindSetBehavior, 300))
				n.PrevConditions = ConditionList{{Event: "onPrev", DelayMs: ms(40)}}
				n.NextConditions = ConditionList{{Event: "onNext", DelayMs: ms(60)}}
				return n
			}(),
			want: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewEvaluator(nil).Evaluate(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestEvaluateRejectsDurationWithChildren(t *testing.T) {
	node := par(leaf(KindSetBehavior, 300))
	node.Common.DurationMs = ms(1000)
	tree := slideTree(par(par(node)))

	_, err := NewEvaluator(nil).AnimationDuration(tree)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSchema))

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "tnLst/par[0]/seq[0]/par[0]/par[0]/par[0]", schemaErr.Path)
}

func TestEvaluateZeroDurationWithChildrenIsAccepted(t *testing.T) {
	node := par(leaf(KindSetBehavior, 300))
	node.Common.DurationMs = ms(0)

	d, err := NewEvaluator(nil).Evaluate(node)
	require.NoError(t, err)
	assert.Equal(t, 300, d)
}

func TestEvaluateMissingCommonTimeNode(t *testing.T) {
	_, err := NewEvaluator(nil).Evaluate(par(TimeNode{Kind: KindSetBehavior}))
	assert.ErrorIs(t, err, ErrMalformedSchema)
}

func TestAnimationDurationSumsMainSequenceParallels(t *testing.T) {
	tree := slideTree(
		par(par(leaf(KindSetBehavior, 300))),
		par(par(leaf(KindAnimateEffect, 500))),
	)

	d, err := NewEvaluator(nil).AnimationDuration(tree)
	require.NoError(t, err)
	assert.Equal(t, 800, d)
}

func TestAnimationDurationEndToEnd(t *testing.T) {
	tree := slideTree(par(leaf(KindSetBehavior, 800), leaf(KindAnimateEffect, 1200)))

	d, err := NewEvaluator(nil).AnimationDuration(tree)
	require.NoError(t, err)
	assert.Equal(t, 2000, d)
}

func TestAnimationDurationSkipsNonParallelMainChildren(t *testing.T) {
	logger, hook := test.NewNullLogger()
	tree := slideTree(par(leaf(KindSetBehavior, 300)), seq(leaf(KindSetBehavior, 700)))

	d, err := NewEvaluator(logger).AnimationDuration(tree)
	require.NoError(t, err)
	assert.Equal(t, 300, d)

	require.NotEmpty(t, hook.Entries)
	found := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["path"] == "tnLst/par[0]/seq[0]/seq[1]" {
			found = true
		}
	}
	assert.True(t, found, "expected a warning for the skipped sequence")
}

func TestAnimationDurationRejectsBadRoot(t *testing.T) {
	notRoot := slideTree(par(leaf(KindSetBehavior, 1)))
	notRoot.Common.NodeType = NodeTypeClickPar

	_, err := NewEvaluator(nil).AnimationDuration(notRoot)
	assert.ErrorIs(t, err, ErrMalformedSchema)
}

func TestEvaluateUnknownElementIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	d, err := NewEvaluator(logger).Evaluate(par(TimeNode{Kind: KindUnknown, RawName: "audio"}))
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
			assert.Equal(t, "audio", entry.Data["element"])
			assert.Equal(t, "par/audio[0]", entry.Data["path"])
		}
	}
	assert.True(t, warned)
}

func TestEvaluateMixedContainersFallsBackToSum(t *testing.T) {
	logger, hook := test.NewNullLogger()

	d, err := NewEvaluator(logger).Evaluate(par(par(leaf(KindSetBehavior, 300)), seq(leaf(KindSetBehavior, 500))))
	require.NoError(t, err)
	assert.Equal(t, 800, d)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Contains(t, last.Message, "unhandled schema shape")
}

func TestEvaluateTraceIsIndentedByDepth(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	node := par(leaf(KindSetBehavior, 300))
	node.Common.ID = "4"
	_, err := NewEvaluator(logger).Evaluate(node)
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "  set: 300 ms", entries[0].Message)
	assert.Equal(t, "par #4: 300 ms", entries[1].Message)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	tree := slideTree(
		par(par(leaf(KindSetBehavior, 1), leaf(KindAnimateEffect, 500))),
		par(seq(leaf(KindAnimateMotion, 250)), seq(leaf(KindAnimateScale, 250))),
	)
	ev := NewEvaluator(nil)

	first, err := ev.AnimationDuration(tree)
	require.NoError(t, err)
	second, err := ev.AnimationDuration(tree)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1001, first)
}
