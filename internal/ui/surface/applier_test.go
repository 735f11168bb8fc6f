package surface

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/ui/mainloop"
)

func newTestApplier(t *testing.T, cfg Config, native bool) (*Applier, *Document, *DocumentTransitions, *mainloop.Loop) {
	t.Helper()
	loop := mainloop.New()
	doc := NewDocument(entity.Viewport{Width: 1000, Height: 800})
	var caps *DocumentTransitions
	var selected = SelectTransitions(false, nil)
	if native {
		caps = NewDocumentTransitions(doc, loop)
		selected = SelectTransitions(true, caps)
	}
	return NewApplier(doc, selected, loop, cfg), doc, caps, loop
}

func TestApplier_InstantClassSwap(t *testing.T) {
	a, doc, _, _ := newTestApplier(t, Config{}, false)
	ctx := context.Background()

	a.Apply(ctx, entity.SchemeDark, Options{})
	assert.Equal(t, []string{"dark"}, doc.Classes())

	a.Apply(ctx, entity.SchemeLight, Options{})
	assert.Equal(t, []string{"light"}, doc.Classes())
	assert.Equal(t, entity.SchemeLight, a.Applied())
	assert.Equal(t, 2, a.Mutations())
}

func TestApplier_AttributeModeAndHint(t *testing.T) {
	a, doc, _, _ := newTestApplier(t, Config{Mode: ModeAttribute, ColorSchemeHint: true}, false)

	a.Apply(context.Background(), entity.SchemeDark, Options{})

	v, ok := doc.Attribute(DefaultAttribute)
	require.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.Empty(t, doc.Classes())
	assert.Equal(t, entity.SchemeDark, doc.ColorScheme())
}

func TestApplier_CustomAttribute(t *testing.T) {
	a, doc, _, _ := newTestApplier(t, Config{Mode: ModeAttribute, Attribute: "data-mode"}, false)

	a.Apply(context.Background(), entity.SchemeLight, Options{})

	v, ok := doc.Attribute("data-mode")
	require.True(t, ok)
	assert.Equal(t, "light", v)
	assert.Equal(t, entity.Scheme(""), doc.ColorScheme())
}

func TestApplier_SuppressionSpansOneTick(t *testing.T) {
	a, doc, _, loop := newTestApplier(t, Config{}, false)

	a.Apply(context.Background(), entity.SchemeDark, Options{SuppressTransitions: true})

	muts := doc.Mutations()
	require.NotEmpty(t, muts)
	for _, m := range muts {
		assert.Contains(t, m.Styles, SuppressStyleID, "suppression must be in effect at %s", m.Kind)
	}
	assert.True(t, doc.HasStyle(SuppressStyleID))
	assert.Equal(t, 1, doc.Recalcs())

	loop.RunPending()

	assert.False(t, doc.HasStyle(SuppressStyleID))
	assert.Equal(t, 2, doc.Recalcs())
}

func TestApplier_SuppressionRemovalGuardedWhenDetached(t *testing.T) {
	a, doc, _, loop := newTestApplier(t, Config{}, false)

	a.Apply(context.Background(), entity.SchemeDark, Options{SuppressTransitions: true})
	doc.Detach()

	assert.NotPanics(t, func() { loop.RunPending() })
	assert.Equal(t, 1, doc.Recalcs())
}

func TestApplier_RepeatedSuppressionKeepsOneCleanup(t *testing.T) {
	a, doc, _, loop := newTestApplier(t, Config{}, false)
	ctx := context.Background()

	a.Apply(ctx, entity.SchemeDark, Options{SuppressTransitions: true})
	a.Apply(ctx, entity.SchemeLight, Options{SuppressTransitions: true})
	loop.Drain(4)

	assert.False(t, doc.HasStyle(SuppressStyleID))
	assert.Equal(t, []string{"light"}, doc.Classes())
}

func TestApplier_DetachedSurfaceIsNoop(t *testing.T) {
	a, doc, _, _ := newTestApplier(t, Config{}, false)
	doc.Detach()

	a.Apply(context.Background(), entity.SchemeDark, Options{SuppressTransitions: true})

	assert.Empty(t, doc.Classes())
	assert.Equal(t, 0, a.Mutations())
	assert.False(t, doc.HasStyle(SuppressStyleID))
}

func TestApplier_NilSurface(t *testing.T) {
	a := NewApplier(nil, nil, mainloop.New(), Config{})
	assert.NotPanics(t, func() {
		a.Apply(context.Background(), entity.SchemeDark, Options{Animated: true})
		a.Close()
	})
	assert.Equal(t, "unsupported", a.Capability())
}

func TestApplier_InvalidSchemeIgnored(t *testing.T) {
	a, doc, _, _ := newTestApplier(t, Config{}, false)

	a.Apply(context.Background(), entity.Scheme("sepia"), Options{})

	assert.Empty(t, doc.Classes())
	assert.Equal(t, 0, a.Mutations())
}

func TestApplier_AnimatedFallsBackWhenUnsupported(t *testing.T) {
	a, doc, _, loop := newTestApplier(t, Config{}, false)

	a.Apply(context.Background(), entity.SchemeDark, Options{
		Animated:            true,
		SuppressTransitions: true,
		Origin:              &entity.Point{X: 10, Y: 10},
	})

	assert.Equal(t, []string{"dark"}, doc.Classes())
	assert.True(t, doc.HasStyle(SuppressStyleID))
	assert.False(t, a.InFlight())
	loop.RunPending()
	assert.False(t, doc.HasStyle(SuppressStyleID))
}

func TestApplier_CircularReveal(t *testing.T) {
	a, doc, caps, loop := newTestApplier(t, Config{}, true)
	require.Equal(t, "native", a.Capability())

	a.Apply(context.Background(), entity.SchemeDark, Options{Animated: true, Origin: &entity.Point{X: 100, Y: 50}})
	assert.True(t, a.InFlight())
	assert.Empty(t, doc.Classes(), "update runs inside the transition")

	loop.RunPending()

	assert.Equal(t, []string{"dark"}, doc.Classes())
	ts := caps.Transitions()
	require.Len(t, ts, 1)
	anims := ts[0].Animations()
	require.Len(t, anims, 1)

	// farthest corner from (100,50) in 1000x800 is (1000,800)
	assert.Equal(t, "circle(0px at 100px 50px)", anims[0].ClipPath[0])
	assert.Equal(t, "circle(1171.537451385998px at 100px 50px)", anims[0].ClipPath[1])
	assert.Equal(t, RevealDuration, anims[0].Duration)
	assert.Equal(t, RevealEasing, anims[0].Easing)
	assert.Equal(t, RevealPseudoElement, anims[0].PseudoElement)
	assert.Empty(t, ts[0].Old().Classes)

	loop.RunPending()
	assert.False(t, a.InFlight())
}

func TestApplier_AnimatedWithoutOriginCrossFades(t *testing.T) {
	a, doc, caps, loop := newTestApplier(t, Config{}, true)

	a.Apply(context.Background(), entity.SchemeDark, Options{Animated: true})
	loop.Drain(4)

	assert.Equal(t, []string{"dark"}, doc.Classes())
	require.Len(t, caps.Transitions(), 1)
	assert.Empty(t, caps.Transitions()[0].Animations())
	assert.False(t, a.InFlight())
}

func TestApplier_SupersededTransitionLastWriteWins(t *testing.T) {
	a, doc, caps, loop := newTestApplier(t, Config{}, true)
	ctx := context.Background()
	origin := &entity.Point{X: 1, Y: 1}

	a.Apply(ctx, entity.SchemeDark, Options{Animated: true, Origin: origin})
	a.Apply(ctx, entity.SchemeLight, Options{Animated: true, Origin: origin})
	loop.Drain(4)

	assert.Equal(t, []string{"light"}, doc.Classes())
	assert.Equal(t, entity.SchemeLight, a.Applied())
	ts := caps.Transitions()
	require.Len(t, ts, 2)
	assert.True(t, ts[0].Skipped())
	assert.Empty(t, ts[0].Animations())
	assert.Len(t, ts[1].Animations(), 1)
	assert.False(t, a.InFlight())
}

func TestApplier_SupersededAfterReady(t *testing.T) {
	a, doc, caps, loop := newTestApplier(t, Config{}, true)
	ctx := context.Background()

	a.Apply(ctx, entity.SchemeDark, Options{Animated: true})
	loop.RunPending()
	a.Apply(ctx, entity.SchemeLight, Options{Animated: true})
	loop.Drain(4)

	assert.Equal(t, []string{"light"}, doc.Classes())
	assert.Len(t, caps.Transitions(), 2)
	assert.False(t, a.InFlight())
}

func TestApplier_CloseRemovesPendingSuppression(t *testing.T) {
	a, doc, _, loop := newTestApplier(t, Config{}, false)

	a.Apply(context.Background(), entity.SchemeDark, Options{SuppressTransitions: true})
	a.Close()

	assert.False(t, doc.HasStyle(SuppressStyleID))
	loop.RunPending()
	assert.Equal(t, 2, doc.Recalcs())
}

func TestApplier_CloseStopsStartedTransitionUpdate(t *testing.T) {
	a, doc, caps, loop := newTestApplier(t, Config{}, true)
	ctx := context.Background()

	a.Apply(ctx, entity.SchemeDark, Options{Animated: true, Origin: &entity.Point{X: 5, Y: 5}})
	require.Len(t, caps.Transitions(), 1)
	a.Close()
	loop.Drain(4)

	assert.Empty(t, doc.Classes(), "update after Close must not write the marker")
	assert.Equal(t, 0, a.Mutations())
	assert.Empty(t, caps.Transitions()[0].Animations())
	assert.False(t, a.InFlight())

	a.Apply(ctx, entity.SchemeLight, Options{})
	assert.Empty(t, doc.Classes())
}
