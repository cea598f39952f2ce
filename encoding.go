package main

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// Encoding names reported in ReadResult.
const (
	encUTF8    = "utf-8"
	encGB18030 = "gb18030"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detector turns raw file bytes into text. Source trees in the wild mix
// encodings, so a single-encoding assumption would silently reject valid
// files: the detector tries UTF-8 first and falls back to GB18030 before
// giving up and calling the content binary.
type Detector struct {
	cfg *Config
}

func NewDetector(cfg *Config) *Detector {
	return &Detector{cfg: cfg}
}

// Decode attempts to interpret raw as text. It returns the decoded string
// and the encoding used, or ok=false when the content is binary or
// undecodable. Only a bounded leading sample is inspected before the full
// decode is committed.
func (d *Detector) Decode(raw []byte) (text string, encoding string, ok bool) {
	if len(raw) == 0 {
		return "", encUTF8, true
	}

	sample := raw
	if len(sample) > d.cfg.SampleSize {
		sample = sample[:d.cfg.SampleSize]
	}

	// Null bytes in the head are a near-certain binary signal; bail before
	// attempting any decode.
	head := sample
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return "", "", false
	}

	if utf8.Valid(raw) {
		decoded := string(bytes.TrimPrefix(raw, utf8BOM))
		if d.looksLikeGarbage(decoded[:min(len(decoded), d.cfg.SampleSize)]) {
			return "", "", false
		}
		return decoded, encUTF8, true
	}

	// The sample alone decides viability; decoding the whole file is only
	// paid once the fallback looks plausible.
	dec := simplifiedchinese.GB18030.NewDecoder()
	sampleText, err := dec.String(string(sample))
	if err != nil {
		return "", "", false
	}
	if len(raw) > len(sample) {
		// A multi-byte character cut at the sample boundary decodes to
		// trailing replacement runes; they say nothing about the file. The
		// full decode below stays strict.
		sampleText = strings.TrimRight(sampleText, string(utf8.RuneError))
	}
	if !plausibleFallback(sampleText) || d.looksLikeGarbage(sampleText) {
		return "", "", false
	}

	full, err := simplifiedchinese.GB18030.NewDecoder().String(string(raw))
	if err != nil || !plausibleFallback(full) {
		return "", "", false
	}
	return full, encGB18030, true
}

// plausibleFallback rejects GB18030 output that only "succeeded" by mapping
// invalid sequences to replacement runes.
func plausibleFallback(text string) bool {
	for _, r := range text {
		if r == utf8.RuneError {
			return false
		}
	}
	return true
}

// looksLikeGarbage reports whether a decoded sample has a non-printable-rune
// ratio above the configured threshold. Short samples are exempt so tiny
// legitimate files are never misjudged.
func (d *Detector) looksLikeGarbage(sample string) bool {
	runes := []rune(sample)
	if len(runes) < d.cfg.MinSampleRunes {
		return false
	}
	nonPrintable := 0
	for _, r := range runes {
		switch r {
		case '\n', '\r', '\t':
			continue
		}
		if !unicode.IsPrint(r) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(runes)) > d.cfg.NonPrintableThreshold
}
