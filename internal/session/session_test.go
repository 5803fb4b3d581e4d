package session

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
)

func newQuietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestFatalRegistersMessage(t *testing.T) {
	sess := New(Options{})

	err := sess.FatalKind(errdefs.KindBuild, "builder exited with status 9")
	require.Error(t, err)

	ce, ok := errdefs.AsChecked(err)
	require.True(t, ok)
	require.Equal(t, errdefs.KindBuild, ce.Kind)
	require.NotEmpty(t, ce.Handle)
	require.Equal(t, "builder exited with status 9", sess.Registry.Get(ce.Handle, false))
}

func TestFatalErrPassesCheckedThrough(t *testing.T) {
	sess := New(Options{})

	original := sess.FatalKind(errdefs.KindBuild, "first failure")
	require.Equal(t, 1, sess.Registry.Len())

	again := sess.FatalErr(original, errdefs.KindInternal, "wrapping layer")
	require.Same(t, original, again, "checked errors must not be re-wrapped")
	require.Equal(t, 1, sess.Registry.Len(), "checked errors must not be re-registered")
}

func TestFatalErrWrapsForeignErrors(t *testing.T) {
	sess := New(Options{})

	err := sess.FatalErr(errors.New("permission denied"), errdefs.KindFilesystem, "cannot enter directory")
	ce, ok := errdefs.AsChecked(err)
	require.True(t, ok)
	require.Equal(t, errdefs.KindFilesystem, ce.Kind)
	require.Contains(t, sess.Registry.Get(ce.Handle, false), "permission denied")
}

func TestFatalErrNil(t *testing.T) {
	sess := New(Options{})
	require.NoError(t, sess.FatalErr(nil, errdefs.KindInternal, "unused"))
}

func TestRecoverableUnderForce(t *testing.T) {
	var logs bytes.Buffer
	sess := New(Options{Force: true, Logger: newQuietLogger(&logs)})

	require.NoError(t, sess.Recoverable("pin already exists, overwriting"))
	require.Contains(t, logs.String(), "level=WARN")
	require.Contains(t, logs.String(), "pin already exists, overwriting")
}

func TestRecoverableWithoutForceEscalates(t *testing.T) {
	var logs bytes.Buffer
	sess := New(Options{Logger: newQuietLogger(&logs)})

	err := sess.Recoverable("pin already exists, overwriting")
	require.Error(t, err)
	require.NotContains(t, logs.String(), "level=WARN")

	ce, ok := errdefs.AsChecked(err)
	require.True(t, ok)
	require.Equal(t, errdefs.KindValidation, ce.Kind)
	require.Equal(t, "pin already exists, overwriting (use -f to force continuation)", ce.Message)
}

func TestRecoverableWhenOverridesPolicy(t *testing.T) {
	var logs bytes.Buffer
	sess := New(Options{Force: false, Logger: newQuietLogger(&logs)})

	require.NoError(t, sess.RecoverableWhen("tolerated anyway", true))
	require.Error(t, sess.RecoverableWhen("never tolerated", false))
}

func TestDebugMirrorsToStderr(t *testing.T) {
	var mirror bytes.Buffer
	sess := New(Options{Debug: true, Stderr: &mirror, Logger: newQuietLogger(&bytes.Buffer{})})

	_ = sess.Fatal("something broke")
	require.Equal(t, "*** something broke\n", mirror.String())
}

func TestNoMirrorWithoutDebug(t *testing.T) {
	var mirror bytes.Buffer
	sess := New(Options{Stderr: &mirror, Logger: newQuietLogger(&bytes.Buffer{})})

	_ = sess.Fatal("something broke")
	require.Empty(t, mirror.String())
}
