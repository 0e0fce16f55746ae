// JingXin replay - feeds a recorded or synthetic perception stream
// through the analysis pipeline and prints the per-tick estimates.
//
// Input is one JSON event per line:
//
//	{"type":"frame","frame":{"face":{"frown":0.2}}}
//	{"type":"utterance","utterance":{"duration_seconds":8,"pitch_std":22,"energy_mean":0.5,"speech_ratio":0.8}}
//
// By default the pipeline runs in process. With -server the tool
// drives a running jingxin-server instead and mirrors the session's
// websocket stream.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/huihuibuhui227-svg/JingXin/internal/httpc"
	"github.com/huihuibuhui227-svg/JingXin/pkg/report"
	"github.com/huihuibuhui227-svg/JingXin/pkg/session"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
	"github.com/huihuibuhui227-svg/JingXin/pkg/voice"
)

// event is one line of a replay stream.
type event struct {
	Type      string          `json:"type"`
	Frame     *signal.Frame   `json:"frame,omitempty"`
	Utterance *voice.Features `json:"utterance,omitempty"`
}

type options struct {
	server    string
	synthetic int
	rate      float64
	quiet     bool
	input     string
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "jingxin-replay:", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.server, "server", "", "drive a running analysis service at this base URL instead of in-process")
	flag.IntVar(&opts.synthetic, "synthetic", 0, "generate this many ramp ticks instead of reading input")
	flag.Float64Var(&opts.rate, "rate", 0, "replay pacing in ticks per second (0 = as fast as possible)")
	flag.BoolVar(&opts.quiet, "quiet", false, "only print the final report")
	flag.Parse()
	opts.input = flag.Arg(0)
	return opts
}

func run(opts options) error {
	events, err := loadEvents(opts.synthetic, opts.input)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no events to replay")
	}

	var interval time.Duration
	if opts.rate > 0 {
		interval = time.Duration(float64(time.Second) / opts.rate)
	}

	if opts.server != "" {
		return runServer(opts.server, events, interval, opts.quiet)
	}
	return runLocal(events, interval, opts.quiet)
}

func loadEvents(synthetic int, path string) ([]event, error) {
	if synthetic > 0 {
		return syntheticEvents(synthetic), nil
	}

	in := os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	return readEvents(in)
}

func readEvents(r io.Reader) ([]event, error) {
	var events []event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var ev event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		switch {
		case ev.Type == "frame" && ev.Frame != nil:
		case ev.Type == "utterance" && ev.Utterance != nil:
		default:
			return nil, fmt.Errorf("line %d: unknown or incomplete event type %q", line, ev.Type)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// runLocal drives an in-process session.
func runLocal(events []event, interval time.Duration, quiet bool) error {
	sess, err := session.New(session.DefaultConfig())
	if err != nil {
		return err
	}

	for i, ev := range events {
		switch ev.Type {
		case "frame":
			rec, err := sess.HandleFrame(*ev.Frame)
			if err != nil {
				fmt.Fprintf(os.Stderr, "event %d: skipping frame: %v\n", i+1, err)
				continue
			}
			if !quiet {
				printTick(rec)
			}
			if interval > 0 {
				time.Sleep(interval)
			}
		case "utterance":
			a := sess.HandleUtterance(*ev.Utterance)
			if !quiet {
				printUtterance(a)
			}
		}
	}
	return printReport(sess.Report())
}

// runServer drives a running jingxin-server over its HTTP API and, unless
// quiet, mirrors the session's websocket stream to stdout.
func runServer(base string, events []event, interval time.Duration, quiet bool) error {
	base = strings.TrimRight(base, "/")

	resp, err := httpc.Get(base + "/health")
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}
	resp.Body.Close()

	id, err := createSession(base)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "session %s\n", id)

	done := make(chan struct{})
	if quiet {
		close(done)
	} else {
		go func() {
			defer close(done)
			mirrorStream(base, id)
		}()
		// Give the subscription a beat to attach before frames flow.
		time.Sleep(100 * time.Millisecond)
	}

	for i, ev := range events {
		var err error
		switch ev.Type {
		case "frame":
			_, err = postJSON(base+"/api/sessions/"+id+"/frames", ev.Frame)
			if interval > 0 {
				time.Sleep(interval)
			}
		case "utterance":
			_, err = postJSON(base+"/api/sessions/"+id+"/utterances", ev.Utterance)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "event %d: %v\n", i+1, err)
		}
	}

	rep, err := endSession(base, id)
	if err != nil {
		return err
	}
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	return printReport(rep)
}

func createSession(base string) (string, error) {
	body, err := postJSON(base+"/api/sessions", nil)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	var out struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return out.SessionID, nil
}

func endSession(base, id string) (report.SessionReport, error) {
	req, err := http.NewRequest(http.MethodDelete, base+"/api/sessions/"+id, nil)
	if err != nil {
		return report.SessionReport{}, err
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return report.SessionReport{}, fmt.Errorf("end session: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return report.SessionReport{}, fmt.Errorf("end session: %s", resp.Status)
	}
	var rep report.SessionReport
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return report.SessionReport{}, fmt.Errorf("end session: %w", err)
	}
	return rep, nil
}

func postJSON(target string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	resp, err := httpc.Post(target, "application/json", data)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// mirrorStream subscribes to the session's websocket feed and prints
// each broadcast tick until the server closes the stream.
func mirrorStream(base, id string) {
	target, err := wsURL(base, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "stream:", err)
		return
	}
	conn, _, err := websocket.DefaultDialer.Dial(target, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "stream:", err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var rec session.TickRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		printTick(rec)
	}
}

func wsURL(base, id string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws/sessions/" + id
	return u.String(), nil
}

func printTick(rec session.TickRecord) {
	if !rec.Fused.Valid {
		fmt.Printf("tick %4d  no modalities\n", rec.Tick)
		return
	}
	fmt.Printf("tick %4d  score %5.1f  %-16s  %s\n", rec.Tick, rec.Fused.Overall, rec.Fused.Label, rec.Face.Summary)
}

func printUtterance(a voice.Assessment) {
	if !a.Valid {
		fmt.Println("voice      unusable features")
		return
	}
	fmt.Printf("voice      score %5.1f  pitch %s, energy %s, %s\n",
		a.Overall, a.Quality.Pitch, a.Quality.Energy, a.Quality.Fluency)
}

func printReport(rep report.SessionReport) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// syntheticEvents builds a calm-to-tense ramp: the subject starts out
// smiling and settled, grows a frown with compressed lips, blinks more
// often, raises the shoulders, and speaks twice along the way.
func syntheticEvents(n int) []event {
	events := make([]event, 0, n+2)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}

		ear := 0.3
		blinkEvery := 90 - int(60*t)
		if i%blinkEvery == blinkEvery-1 {
			ear = 0.08
		}

		face := signal.Activations{
			signal.Smile:          0.5 * (1 - t),
			signal.Frown:          0.55 * t,
			signal.MouthDown:      0.3 * t,
			signal.LipCompression: 0.35 * t,
			signal.AvgEAR:         ear,
			signal.HeadYaw:        0.03 * math.Sin(float64(i)/45),
		}

		f := &signal.Frame{Tick: i + 1, Face: face, Pose: syntheticPose(t)}
		if third := n / 3; i >= third && i < 2*third {
			f.Hands = map[int][]signal.Point{0: syntheticHand()}
		}
		events = append(events, event{Type: "frame", Frame: f})

		switch i {
		case n / 3:
			events = append(events, event{Type: "utterance", Utterance: &voice.Features{
				DurationSeconds: 8, PitchMean: 170, PitchStd: 26,
				EnergyMean: 0.55, EnergyStd: 0.1, SpeechRatio: 0.85, PauseCount: 1,
			}})
		case (5 * n) / 6:
			events = append(events, event{Type: "utterance", Utterance: &voice.Features{
				DurationSeconds: 6, PitchMean: 195, PitchStd: 8,
				EnergyMean: 0.25, EnergyStd: 0.05, SpeechRatio: 0.55, PauseCount: 6,
			}})
		}
	}
	return events
}

// syntheticPose keeps the subject facing the camera with both arms
// hanging straight; the shoulders creep toward the ears as t grows.
func syntheticPose(t float64) []signal.Point {
	shoulderY := 0.50 - 0.06*t
	pts := make([]signal.Point, signal.PoseLandmarks)
	for i := range pts {
		pts[i] = signal.Point{X: 0.5, Y: 0.5}
	}
	// nose
	pts[0] = signal.Point{X: 0.5, Y: 0.25}
	// ears
	pts[7] = signal.Point{X: 0.4, Y: 0.3}
	pts[8] = signal.Point{X: 0.6, Y: 0.3}
	// shoulders
	pts[11] = signal.Point{X: 0.35, Y: shoulderY}
	pts[12] = signal.Point{X: 0.65, Y: shoulderY}
	// elbows
	pts[13] = signal.Point{X: 0.35, Y: shoulderY + 0.2}
	pts[14] = signal.Point{X: 0.65, Y: shoulderY + 0.2}
	// wrists
	pts[15] = signal.Point{X: 0.35, Y: shoulderY + 0.4}
	pts[16] = signal.Point{X: 0.65, Y: shoulderY + 0.4}
	return pts
}

// syntheticHand is a relaxed open hand, neither fist nor full spread.
func syntheticHand() []signal.Point {
	pts := make([]signal.Point, signal.HandLandmarks)
	for i := range pts {
		pts[i] = signal.Point{X: 0.5, Y: 0.5}
	}
	for _, tip := range []int{4, 8, 12, 16, 20} {
		pts[tip] = signal.Point{X: 0.5, Y: 0.3}
	}
	for _, dip := range []int{7, 11, 15, 19} {
		pts[dip] = signal.Point{X: 0.5, Y: 0.4}
	}
	return pts
}
