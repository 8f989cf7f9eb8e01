package service

import (
	"testing"
)

func TestDetectEnglish(t *testing.T) {
	svc := NewDetectService()
	d := svc.Detect("The weather is lovely today and the birds are singing in the garden.")
	if d.Language != "en" {
		t.Errorf("language = %q, want en", d.Language)
	}
	if d.Confidence <= 0 || d.Confidence > 1 {
		t.Errorf("confidence out of range: %v", d.Confidence)
	}
}

func TestDetectSpanish(t *testing.T) {
	svc := NewDetectService()
	d := svc.Detect("Me gustaría aprender nuevos idiomas para poder viajar por todo el mundo.")
	if d.Language != "es" {
		t.Errorf("language = %q, want es", d.Language)
	}
}

func TestDetectAliasedCodes(t *testing.T) {
	svc := NewDetectService()

	// Chinese reports iso code zh, which the language table stores as zh-cn.
	if d := svc.Detect("今天天气很好，我们一起去公园散步吧。希望明天也是晴天。"); d.Language != "zh-cn" {
		t.Errorf("chinese detected as %q, want zh-cn", d.Language)
	}
	// Hebrew reports he, stored as iw.
	if d := svc.Detect("שלום, מה שלומך היום? אני מקווה שהכל בסדר אצלך ואצל המשפחה."); d.Language != "iw" {
		t.Errorf("hebrew detected as %q, want iw", d.Language)
	}
}

func TestDetectEmptyInput(t *testing.T) {
	svc := NewDetectService()
	for _, text := range []string{"", "   ", "\n\t"} {
		d := svc.Detect(text)
		if d.Language != "en" || d.Confidence != 0 {
			t.Errorf("Detect(%q) = %+v, want en with zero confidence", text, d)
		}
	}
}
