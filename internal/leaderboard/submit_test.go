package leaderboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/verte-zerg/pinkytype/internal/model"
)

type fakeGateway struct {
	best    map[string]int
	saved   []model.ScoreSubmission
	bestErr error
	saveErr error
}

func (f *fakeGateway) Scores(context.Context, string) ([]model.LeaderboardEntry, error) {
	return nil, nil
}

func (f *fakeGateway) PersonalBest(_ context.Context, name, category string) (int, bool, error) {
	if f.bestErr != nil {
		return 0, false, f.bestErr
	}
	wpm, ok := f.best[name+"/"+category]
	return wpm, ok, nil
}

func (f *fakeGateway) Save(_ context.Context, sub model.ScoreSubmission) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, sub)
	return nil
}

func (f *fakeGateway) IsNameTaken(context.Context, string) (bool, error) {
	return false, nil
}

var timeCfg = model.GameConfig{Mode: model.ModeTime, Value: 30}

func TestSubmitSkipsIneligible(t *testing.T) {
	gw := &fakeGateway{}
	res, err := Submit(context.Background(), gw, "alice", model.GameConfig{Mode: model.ModeZen}, model.SessionStats{WPM: 80})
	if err != nil || res.Status != StatusSkipped {
		t.Fatalf("zen submit = %+v, %v", res, err)
	}
	res, err = Submit(context.Background(), gw, "alice", timeCfg, model.SessionStats{WPM: 9.9})
	if err != nil || res.Status != StatusSkipped {
		t.Fatalf("slow submit = %+v, %v", res, err)
	}
	if len(gw.saved) != 0 {
		t.Fatalf("saved = %v, want none", gw.saved)
	}
}

func TestSubmitNeedsName(t *testing.T) {
	res, err := Submit(context.Background(), &fakeGateway{}, "  ", timeCfg, model.SessionStats{WPM: 50})
	if err != nil || res.Status != StatusNeedName {
		t.Fatalf("submit = %+v, %v", res, err)
	}
}

func TestSubmitNewRecord(t *testing.T) {
	gw := &fakeGateway{best: map[string]int{"alice/time-30": 50}}
	res, err := Submit(context.Background(), gw, "Alice", timeCfg, model.SessionStats{WPM: 50.4, Accuracy: 97})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Status != StatusNewRecord || res.WPM != 50 || !res.HadBest || res.PersonalBest != 50 {
		t.Fatalf("result = %+v", res)
	}
	if len(gw.saved) != 1 || gw.saved[0].Name != "alice" || gw.saved[0].Category != "time-30" {
		t.Fatalf("saved = %+v", gw.saved)
	}
}

func TestSubmitNoRecord(t *testing.T) {
	gw := &fakeGateway{best: map[string]int{"alice/time-30": 70}}
	res, err := Submit(context.Background(), gw, "alice", timeCfg, model.SessionStats{WPM: 60})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Status != StatusNoRecord || res.PersonalBest != 70 {
		t.Fatalf("result = %+v", res)
	}
	if len(gw.saved) != 0 {
		t.Fatalf("saved = %+v, want none", gw.saved)
	}
}

func TestSubmitGatewayErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Submit(context.Background(), &fakeGateway{bestErr: boom}, "alice", timeCfg, model.SessionStats{WPM: 60}); !errors.Is(err, boom) {
		t.Fatalf("best err = %v", err)
	}
	if _, err := Submit(context.Background(), &fakeGateway{saveErr: boom}, "alice", timeCfg, model.SessionStats{WPM: 60}); !errors.Is(err, boom) {
		t.Fatalf("save err = %v", err)
	}
}

func TestParseBackend(t *testing.T) {
	cases := map[string]Backend{"": BackendLocal, "LOCAL": BackendLocal, " remote ": BackendRemote, "off": BackendOff}
	for in, want := range cases {
		got, err := ParseBackend(in)
		if err != nil || got != want {
			t.Fatalf("ParseBackend(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseBackend("cloud"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestOpenDegradesToOffline(t *testing.T) {
	local := &fakeGateway{}
	if gw := Open(Options{Backend: BackendLocal}, local); gw != Gateway(local) {
		t.Fatalf("local backend = %T", gw)
	}
	if _, ok := Open(Options{Backend: BackendLocal}, nil).(Offline); !ok {
		t.Fatalf("nil local should be offline")
	}
	if _, ok := Open(Options{Backend: BackendRemote}, local).(Offline); !ok {
		t.Fatalf("remote without url should be offline")
	}
	if _, ok := Open(Options{Backend: BackendOff}, local).(Offline); !ok {
		t.Fatalf("off should be offline")
	}
	if _, ok := Open(Options{Backend: BackendRemote, URL: "http://localhost:1", Timeout: time.Second}, local).(*Client); !ok {
		t.Fatalf("remote with url should be a client")
	}
}

func TestOfflineGateway(t *testing.T) {
	ctx := context.Background()
	var gw Gateway = Offline{}
	entries, err := gw.Scores(ctx, "time-30")
	if err != nil || entries == nil || len(entries) != 0 {
		t.Fatalf("scores = %v, %v", entries, err)
	}
	res, err := Submit(ctx, gw, "alice", timeCfg, model.SessionStats{WPM: 40})
	if err != nil || res.Status != StatusNewRecord {
		t.Fatalf("offline submit = %+v, %v", res, err)
	}
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	client := NewClient(srv.URL, srv.Client())
	if _, err := client.Scores(context.Background(), "time-30"); !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
	if _, _, err := client.PersonalBest(context.Background(), "alice", "time-30"); !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}
