package player

import (
	"testing"

	"github.com/godbus/dbus/v5"

	"github.com/aldenhart/mprisctl/internal/bus"
	"github.com/aldenhart/mprisctl/internal/bus/bustest"
	"github.com/aldenhart/mprisctl/internal/errors"
)

func TestStateFromStatus(t *testing.T) {
	cases := []struct {
		status string
		want   PlaybackState
	}{
		{"Playing", StatePlaying},
		{"Paused", StatePaused},
		{"Stopped", StateUnknown},
		{"", StateUnknown},
		{"playing", StateUnknown}, // MPRIS status strings are case-sensitive
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			if got := StateFromStatus(tc.status); got != tc.want {
				t.Errorf("StateFromStatus(%q) = %v, want %v", tc.status, got, tc.want)
			}
		})
	}
}

func TestPlaybackStateActive(t *testing.T) {
	if !StatePlaying.Active() || !StatePaused.Active() {
		t.Error("playing and paused states should be active")
	}
	if StateUnknown.Active() {
		t.Error("unknown state should not be active")
	}
}

func TestMetadataDisplayArtist(t *testing.T) {
	if got := (Metadata{Artist: []string{"Band", "Feature"}}).DisplayArtist(); got != "Band" {
		t.Errorf("expected first artist, got %q", got)
	}
	if got := (Metadata{}).DisplayArtist(); got != "" {
		t.Errorf("expected empty artist, got %q", got)
	}
}

func TestRefresh(t *testing.T) {
	t.Run("populates cached state from the remote", func(t *testing.T) {
		client := bustest.New()
		client.AddPlayer("org.mpris.MediaPlayer2.vlc", ":1.5", "Playing", "Song", "Band", "X")

		p := New("org.mpris.MediaPlayer2.vlc", ":1.5", client)
		updated, err := p.Refresh()
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if !updated {
			t.Fatal("Refresh should report an update")
		}
		if p.State() != StatePlaying {
			t.Errorf("expected playing state, got %v", p.State())
		}
		if p.Metadata().Title != "Song" || p.Metadata().DisplayArtist() != "Band" || p.Metadata().Album != "X" {
			t.Errorf("unexpected metadata: %+v", p.Metadata())
		}
	})

	t.Run("missing sub-fields reset to zero values", func(t *testing.T) {
		client := bustest.New()
		client.AddPlayer("org.mpris.MediaPlayer2.mpv", ":1.6", "Paused", "Only Title", "", "")

		p := New("org.mpris.MediaPlayer2.mpv", ":1.6", client)
		if _, err := p.Refresh(); err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if p.Metadata().DisplayArtist() != "" || p.Metadata().Album != "" {
			t.Errorf("unset fields should be zero: %+v", p.Metadata())
		}
	})

	t.Run("fetch failure leaves cache untouched", func(t *testing.T) {
		client := bustest.New()
		client.AddPlayer("org.mpris.MediaPlayer2.vlc", ":1.5", "Playing", "Song", "Band", "X")

		p := New("org.mpris.MediaPlayer2.vlc", ":1.5", client)
		if _, err := p.Refresh(); err != nil {
			t.Fatalf("initial Refresh failed: %v", err)
		}

		client.FailProperties[":1.5"] = true
		updated, err := p.Refresh()
		if updated {
			t.Error("failed Refresh should report no update")
		}
		if !errors.IsMetadataUnavailable(err) {
			t.Errorf("expected metadata-unavailable, got %v", err)
		}
		if p.Metadata().Title != "Song" || p.State() != StatePlaying {
			t.Error("failed Refresh should leave the cache stale but intact")
		}
	})

	t.Run("playback fetch failure does not half-apply metadata", func(t *testing.T) {
		client := bustest.New()
		client.AddPlayer("org.mpris.MediaPlayer2.vlc", ":1.5", "Playing", "Old", "Band", "X")

		p := New("org.mpris.MediaPlayer2.vlc", ":1.5", client)
		if _, err := p.Refresh(); err != nil {
			t.Fatalf("initial Refresh failed: %v", err)
		}

		// New metadata is readable but the status property is gone.
		client.Properties[":1.5"][bus.PropMetadata] = bustest.MetadataVariant("New", "Band", "X")
		delete(client.Properties[":1.5"], bus.PropPlaybackStatus)

		if updated, _ := p.Refresh(); updated {
			t.Error("partial fetch should report no update")
		}
		if p.Metadata().Title != "Old" {
			t.Errorf("metadata should be unchanged after partial fetch, got %q", p.Metadata().Title)
		}
	})
}

func TestApplyChange(t *testing.T) {
	newPlayer := func(t *testing.T) *Player {
		t.Helper()
		client := bustest.New()
		client.AddPlayer("org.mpris.MediaPlayer2.vlc", ":1.5", "Playing", "Song", "Band", "X")
		p := New("org.mpris.MediaPlayer2.vlc", ":1.5", client)
		if _, err := p.Refresh(); err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		return p
	}

	t.Run("position-only change is ignored", func(t *testing.T) {
		p := newPlayer(t)
		worthy := p.ApplyChange(map[string]dbus.Variant{
			bus.PropPosition: dbus.MakeVariant(int64(123456)),
		})
		if worthy {
			t.Error("position-only change should not be render-worthy")
		}
	})

	t.Run("metadata change applies all differing fields", func(t *testing.T) {
		p := newPlayer(t)
		worthy := p.ApplyChange(map[string]dbus.Variant{
			bus.PropMetadata: bustest.MetadataVariant("Next Song", "Other Band", "X"),
		})
		if !worthy {
			t.Fatal("differing metadata should be render-worthy")
		}
		if p.Metadata().Title != "Next Song" {
			t.Errorf("title not applied: %q", p.Metadata().Title)
		}
		if p.Metadata().DisplayArtist() != "Other Band" {
			t.Errorf("artist not applied: %q", p.Metadata().DisplayArtist())
		}
	})

	t.Run("identical metadata is not render-worthy", func(t *testing.T) {
		p := newPlayer(t)
		worthy := p.ApplyChange(map[string]dbus.Variant{
			bus.PropMetadata: bustest.MetadataVariant("Song", "Band", "X"),
		})
		if worthy {
			t.Error("unchanged metadata should not be render-worthy")
		}
	})

	t.Run("playback status is always render-worthy", func(t *testing.T) {
		p := newPlayer(t)
		worthy := p.ApplyChange(map[string]dbus.Variant{
			bus.PropPlaybackStatus: dbus.MakeVariant("Playing"),
		})
		if !worthy {
			t.Error("playback status change should be render-worthy even when equal")
		}
	})

	t.Run("Stopped maps to unknown and is render-worthy", func(t *testing.T) {
		p := newPlayer(t)
		worthy := p.ApplyChange(map[string]dbus.Variant{
			bus.PropPlaybackStatus: dbus.MakeVariant("Stopped"),
		})
		if !worthy {
			t.Fatal("Stopped should be render-worthy")
		}
		if p.State() != StateUnknown {
			t.Errorf("Stopped should map to unknown, got %v", p.State())
		}
	})

	t.Run("position alongside metadata is still processed", func(t *testing.T) {
		p := newPlayer(t)
		worthy := p.ApplyChange(map[string]dbus.Variant{
			bus.PropPosition: dbus.MakeVariant(int64(1)),
			bus.PropMetadata: bustest.MetadataVariant("Another", "Band", "X"),
		})
		if !worthy {
			t.Error("metadata riding with a position change should still apply")
		}
	})
}

func TestTransportControls(t *testing.T) {
	client := bustest.New()
	client.AddPlayer("org.mpris.MediaPlayer2.vlc", ":1.5", "Playing", "Song", "Band", "X")
	p := New("org.mpris.MediaPlayer2.vlc", ":1.5", client)

	for _, call := range []struct {
		name string
		fn   func() error
	}{
		{"Play", p.Play},
		{"Pause", p.Pause},
		{"PlayPause", p.PlayPause},
		{"Stop", p.Stop},
		{"Previous", p.Previous},
		{"Next", p.Next},
	} {
		if err := call.fn(); err != nil {
			t.Errorf("%s failed: %v", call.name, err)
		}
	}

	want := []string{":1.5/Play", ":1.5/Pause", ":1.5/PlayPause", ":1.5/Stop", ":1.5/Previous", ":1.5/Next"}
	if len(client.Calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), client.Calls)
	}
	for i, w := range want {
		if client.Calls[i] != w {
			t.Errorf("call %d: got %s, want %s", i, client.Calls[i], w)
		}
	}

	t.Run("failed call reports remote-unavailable", func(t *testing.T) {
		client.FailCalls[":1.5"] = true
		err := p.Play()
		if !errors.IsRemoteUnavailable(err) {
			t.Errorf("expected remote-unavailable, got %v", err)
		}
	})
}

func TestSubscription(t *testing.T) {
	client := bustest.New()
	client.AddPlayer("org.mpris.MediaPlayer2.vlc", ":1.5", "Playing", "Song", "Band", "X")
	p := New("org.mpris.MediaPlayer2.vlc", ":1.5", client)

	if err := p.Subscribe(); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if !p.Subscribed() {
		t.Error("handle should report itself subscribed")
	}
	// Subscribing twice must not install a second match.
	if err := p.Subscribe(); err != nil {
		t.Fatalf("second Subscribe failed: %v", err)
	}
	if len(client.SubscribeLog) != 1 {
		t.Errorf("expected a single subscribe transition, got %v", client.SubscribeLog)
	}

	if err := p.Unsubscribe(); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}
	if p.Subscribed() {
		t.Error("handle should report itself unsubscribed")
	}
	if len(client.SubscribedOwners()) != 0 {
		t.Errorf("no owners should remain subscribed, got %v", client.SubscribedOwners())
	}
}

func TestSetOwnerPreservesState(t *testing.T) {
	client := bustest.New()
	client.AddPlayer("org.mpris.MediaPlayer2.vlc", ":1.5", "Paused", "Song", "Band", "X")
	p := New("org.mpris.MediaPlayer2.vlc", ":1.5", client)
	if _, err := p.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	p.SetOwner(":1.99")

	if p.Owner() != ":1.99" {
		t.Errorf("owner not updated: %s", p.Owner())
	}
	if p.State() != StatePaused || p.Metadata().Title != "Song" {
		t.Error("cached state must survive an owner change")
	}
}
