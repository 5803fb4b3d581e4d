package outcome

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/session"
)

func TestMessagePresentExactlyOnFailure(t *testing.T) {
	ok := Success()
	require.True(t, ok.Success())
	require.Empty(t, ok.Message())

	bad := FailureNoTrace("build description missing")
	require.False(t, bad.Success())
	require.Equal(t, "build description missing", bad.Message())

	// A failure constructed without a message still carries one.
	blank := FailureNoTrace("")
	require.False(t, blank.Success())
	require.NotEmpty(t, blank.Message())
}

func TestFromError(t *testing.T) {
	sess := session.New(session.Options{})

	require.True(t, FromError(sess, nil).Success())

	o := FromError(sess, errors.New("disk full"))
	require.False(t, o.Success())
	require.Equal(t, "disk full", o.Message())
}

func TestFromErrorKeepsFullCheckedDiagnostic(t *testing.T) {
	sess := session.New(session.Options{})

	raised := sess.Fatal("first line\nsecond line with detail")
	o := FromError(sess, raised)
	require.False(t, o.Success())
	require.Equal(t, "first line\nsecond line with detail", o.Message())

	// The peek must not consume: the top-level handler still resolves it.
	ce, ok := errdefs.AsChecked(raised)
	require.True(t, ok)
	require.Equal(t, "first line\nsecond line with detail", sess.Registry.Get(ce.Handle, false))
}

func TestAssert(t *testing.T) {
	sess := session.New(session.Options{})

	require.NoError(t, Assert(sess, Success()))

	err := Assert(sess, FailureNoTrace("cannot continue"))
	require.Error(t, err)
	ce, ok := errdefs.AsChecked(err)
	require.True(t, ok)
	require.Equal(t, "cannot continue", ce.Message)
	require.Equal(t, "cannot continue", sess.Registry.Get(ce.Handle, false))
}

func TestAssertKind(t *testing.T) {
	sess := session.New(session.Options{})

	err := AssertKind(sess, FailureNoTrace("no crate here"), errdefs.KindValidation)
	require.True(t, errdefs.IsKind(err, errdefs.KindValidation))
}

func TestCheck(t *testing.T) {
	sess := session.New(session.Options{})

	require.NoError(t, Check(sess, true, "unused"))
	require.Error(t, Check(sess, false, "precondition failed"))
}

func TestFailureTracesOnlyInDebug(t *testing.T) {
	var mirror bytes.Buffer
	debug := session.New(session.Options{Debug: true, Stderr: &mirror})

	Failure(debug, "traced")
	require.Contains(t, mirror.String(), "outcome failure: traced")
	require.Contains(t, mirror.String(), "raised at")

	mirror.Reset()
	plain := session.New(session.Options{Stderr: &mirror})
	Failure(plain, "silent")
	require.Empty(t, mirror.String())
}
