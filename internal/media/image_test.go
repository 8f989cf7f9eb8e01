package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/session"
)

type fakeOCR struct {
	text     string
	err      error
	calls    int
	lastLang string
}

func (o *fakeOCR) ExtractText(ctx context.Context, image []byte, language string) (string, error) {
	o.calls++
	o.lastLang = language
	if o.err != nil {
		return "", o.err
	}
	return o.text, nil
}

func TestImageProcessCreatesTurnAndEvent(t *testing.T) {
	ocr := &fakeOCR{text: "menu del dia"}
	p := NewImageProcessor(ocr, newTestOrchestrator())
	sess := session.New("en")

	res, err := p.Process(context.Background(), sess, []byte("PNGDATA"))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if res.Text != "menu del dia" {
		t.Errorf("result text = %q", res.Text)
	}
	if ocr.lastLang != DefaultOCRLanguage {
		t.Errorf("ocr language = %q, want %q", ocr.lastLang, DefaultOCRLanguage)
	}
	if got := len(sess.Messages()); got != 2 {
		t.Fatalf("history = %d messages, want extracted text + reply", got)
	}

	events := sess.ImageEvents()
	if len(events) != 1 {
		t.Fatalf("image events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Source != "ocr" || ev.ExtractedText != "menu del dia" || ev.AssistantText == "" || ev.Error != "" {
		t.Errorf("event = %+v", ev)
	}
}

func TestImageDedupByContentHash(t *testing.T) {
	ocr := &fakeOCR{text: "hola"}
	p := NewImageProcessor(ocr, newTestOrchestrator())
	sess := session.New("en")
	img := []byte("SAME IMAGE")

	if _, err := p.Process(context.Background(), sess, img); err != nil {
		t.Fatalf("first process failed: %v", err)
	}
	res, err := p.Process(context.Background(), sess, img)
	if err != nil {
		t.Fatalf("repeat process errored: %v", err)
	}
	if !res.Duplicate {
		t.Fatal("byte-identical repeat not deduplicated")
	}
	if ocr.calls != 1 {
		t.Errorf("ocr calls = %d, want 1", ocr.calls)
	}
	if got := len(sess.ImageEvents()); got != 1 {
		t.Errorf("image events = %d, want 1", got)
	}
}

func TestImageOCRFailureLogsEventOnly(t *testing.T) {
	ocr := &fakeOCR{err: domain.ErrNoTextFound}
	p := NewImageProcessor(ocr, newTestOrchestrator())
	sess := session.New("en")

	_, err := p.Process(context.Background(), sess, []byte("BLANK"))
	if !errors.Is(err, domain.ErrNoTextFound) {
		t.Fatalf("error = %v, want ErrNoTextFound", err)
	}
	if len(sess.Messages()) != 0 {
		t.Error("ocr failure created conversation turns")
	}

	events := sess.ImageEvents()
	if len(events) != 1 {
		t.Fatalf("image events = %d, want the failure logged", len(events))
	}
	if !strings.HasPrefix(events[0].Error, "OCR error:") {
		t.Errorf("event error = %q", events[0].Error)
	}
	if events[0].ExtractedText != "" || events[0].AssistantText != "" {
		t.Errorf("failure event carries text: %+v", events[0])
	}
}

func TestImageEmptyRejected(t *testing.T) {
	p := NewImageProcessor(&fakeOCR{}, newTestOrchestrator())
	sess := session.New("en")

	_, err := p.Process(context.Background(), sess, []byte{})
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Errorf("empty image error = %v, want ErrEmptyInput", err)
	}
	if len(sess.ImageEvents()) != 0 {
		t.Error("empty image logged an event")
	}
}
