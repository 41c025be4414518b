package extra

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
)

// special tokens like [_BEG_] that whisper leaves in the transcript
var specialRE = regexp.MustCompile(`\[.*?\]`)

// Handlers carry the recognition callbacks the owning view passes in.
// OnResult fires once with the final transcript, OnEnd fires on every
// session end, result or not.
type Handlers struct {
	OnResult func(text string)
	OnEnd    func()
}

func cleanTranscript(s string) string {
	s = strings.TrimRight(s, "\n")
	s = specialRE.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.ReplaceAll(s, "\n ", "\n"))
}

// writeWavHeader prefixes raw 16-bit mono pcm with a riff header.
func writeWavHeader(w io.Writer, sampleRate, dataSize int) error {
	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1)
	binary.LittleEndian.PutUint16(header[22:24], 1)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate)*1*(16/8))
	binary.LittleEndian.PutUint16(header[32:34], 1*(16/8))
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))
	_, err := w.Write(header)
	return err
}

// transcribeWAV ships the captured audio to a whisper server and
// returns the cleaned transcript.
func transcribeWAV(serverURL, lang string, sampleRate int, audio *bytes.Buffer) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "recording.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	dataSize := audio.Len()
	if err := writeWavHeader(part, sampleRate, dataSize); err != nil {
		return "", fmt.Errorf("failed to write wav header: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to write wav data: %w", err)
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return "", fmt.Errorf("failed to write response_format: %w", err)
	}
	if lang != "" {
		if err := writer.WriteField("language", lang); err != nil {
			return "", fmt.Errorf("failed to write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	resp, err := http.Post(serverURL, writer.FormDataContentType(), body) //nolint:noctx
	if err != nil {
		return "", fmt.Errorf("whisper request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper server status: %d", resp.StatusCode)
	}
	responseTextBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read whisper response: %w", err)
	}
	return cleanTranscript(string(responseTextBytes)), nil
}
