package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"promptvault-backend-go/internal/core"
)

type fakeRewriter struct {
	result string
	err    error
	calls  int
}

func (f *fakeRewriter) Rewrite(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.result, f.err
}

func newRewriteService(t *testing.T, rewriter *fakeRewriter) core.RewriteService {
	t.Helper()
	svc, err := core.NewRewriteService(rewriter)
	require.NoError(t, err)
	return svc
}

func TestRewriteRejectsEmptyInputWithoutUpstreamCall(t *testing.T) {
	rewriter := &fakeRewriter{result: "never used"}
	svc := newRewriteService(t, rewriter)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := svc.Rewrite(context.Background(), input)
		require.ErrorIs(t, err, core.ErrEmptyPrompt)
	}
	require.Zero(t, rewriter.calls)
}

func TestRewriteReturnsUpstreamText(t *testing.T) {
	rewriter := &fakeRewriter{result: "a sharper prompt"}
	svc := newRewriteService(t, rewriter)

	out, err := svc.Rewrite(context.Background(), "a vague prompt")
	require.NoError(t, err)
	require.Equal(t, "a sharper prompt", out)
}

func TestRewriteUpstreamFailure(t *testing.T) {
	rewriter := &fakeRewriter{err: errors.New("model unavailable")}
	svc := newRewriteService(t, rewriter)

	_, err := svc.Rewrite(context.Background(), "some prompt")
	require.ErrorIs(t, err, core.ErrUpstreamRewrite)
}

func TestRewriteEmptyUpstreamResultFallsBackToOriginal(t *testing.T) {
	rewriter := &fakeRewriter{result: "   "}
	svc := newRewriteService(t, rewriter)

	out, err := svc.Rewrite(context.Background(), "keep me intact")
	require.NoError(t, err)
	require.Equal(t, "keep me intact", out)
}
