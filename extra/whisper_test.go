package extra

import (
	"bytes"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello world\n", "hello world"},
		{"[_BEG_] hello [_TT_150]", "hello"},
		{" spaced out ", "spaced out"},
		{"[_BEG_][_TT_42]", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanTranscript(tt.input); got != tt.expected {
			t.Errorf("cleanTranscript(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestWriteWavHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := writeWavHeader(&buf, 16000, 3200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header := buf.Bytes()
	if len(header) != 44 {
		t.Fatalf("expected a 44 byte header, got %d", len(header))
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		t.Fatalf("bad riff markers: %q %q", header[0:4], header[8:12])
	}
	if got := binary.LittleEndian.Uint32(header[24:28]); got != 16000 {
		t.Fatalf("sample rate = %d, expected 16000", got)
	}
	if got := binary.LittleEndian.Uint16(header[22:24]); got != 1 {
		t.Fatalf("channels = %d, expected mono", got)
	}
	if got := binary.LittleEndian.Uint32(header[40:44]); got != 3200 {
		t.Fatalf("data size = %d, expected 3200", got)
	}
	if got := binary.LittleEndian.Uint32(header[4:8]); got != 36+3200 {
		t.Fatalf("riff size = %d, expected %d", got, 36+3200)
	}
}

func TestTranscribeWAV(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("bad multipart request: %v", err)
		}
		if got := req.FormValue("response_format"); got != "text" {
			t.Errorf("response_format = %q, expected text", got)
		}
		if got := req.FormValue("language"); got != "en" {
			t.Errorf("language = %q, expected en", got)
		}
		file, _, err := req.FormFile("file")
		if err != nil {
			t.Errorf("missing audio file: %v", err)
		} else {
			data, _ := io.ReadAll(file)
			file.Close()
			if len(data) < 44 || string(data[0:4]) != "RIFF" {
				t.Errorf("audio payload is not a wav file")
			}
		}
		if _, err := w.Write([]byte("[_BEG_] hello there\n")); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer ts.Close()
	audio := bytes.NewBuffer(make([]byte, 640))
	got, err := transcribeWAV(ts.URL, "en", 16000, audio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello there" {
		t.Fatalf("transcript = %q, expected %q", got, "hello there")
	}
}

func TestTranscribeWAVServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	if _, err := transcribeWAV(ts.URL, "", 16000, &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error")
	}
}
