package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/logging"
	"git.home.luguber.info/inful/cratebuilder/internal/settings"
)

// SettingsCmd implements the 'settings' command.
type SettingsCmd struct {
	List   bool   `help:"List the effective settings" xor:"op" required:""`
	Get    bool   `help:"Print the value stored under KEY" xor:"op" required:""`
	Set    bool   `help:"Store VALUE under KEY" xor:"op" required:""`
	Unset  bool   `help:"Remove KEY" xor:"op" required:""`
	Global bool   `help:"Operate on the global scope instead of the crate's"`
	Key    string `arg:"" optional:"" help:"Settings key (dotted form)"`
	Value  string `arg:"" optional:"" help:"Value for --set"`
}

func (s *SettingsCmd) Run(g *Global) error {
	sess := g.Session
	store, err := loadStore(g)
	if err != nil {
		return sess.FatalErr(err, errdefs.KindSettings, "cannot load settings")
	}

	switch {
	case s.List:
		for _, kv := range store.List() {
			fmt.Fprintf(g.Stdout, "%s=%s\n", kv.Key, kv.Value)
		}
		return nil
	case s.Get:
		if s.Key == "" {
			return sess.FatalKind(errdefs.KindValidation, "settings --get needs a key")
		}
		value, ok := store.Get(s.Key)
		if !ok {
			return sess.FatalKind(errdefs.KindSettings, fmt.Sprintf("no setting stored under %q", s.Key))
		}
		fmt.Fprintf(g.Stdout, "%v\n", value)
		return nil
	case s.Set:
		if s.Key == "" || s.Value == "" {
			return sess.FatalKind(errdefs.KindValidation, "settings --set needs a key and a value")
		}
		if !settings.IsKnownKey(s.Key) {
			sess.Logger.Log(context.Background(), logging.LevelDetail,
				"Unknown settings key, storing anyway", slog.String("key", s.Key))
		}
		if err := store.Set(s.Key, s.Value, s.Global); err != nil {
			return sess.FatalErr(err, errdefs.KindSettings, "cannot store setting")
		}
		return nil
	default: // unset
		if s.Key == "" {
			return sess.FatalKind(errdefs.KindValidation, "settings --unset needs a key")
		}
		if err := store.Unset(s.Key, s.Global); err != nil {
			return sess.FatalErr(err, errdefs.KindSettings, "cannot remove setting")
		}
		return nil
	}
}
