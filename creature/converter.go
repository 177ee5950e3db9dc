package creature

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Converter turns Creature JSON exports into rig buffers on disk.
type Converter struct {
	// BufferSize is the initial Builder capacity; DefaultBufferSize when zero.
	BufferSize int

	log logrus.FieldLogger
}

func NewConverter(log logrus.FieldLogger) *Converter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Converter{log: log}
}

// Convert parses a JSON export and encodes it.
func (c *Converter) Convert(data []byte) (*Document, []byte, error) {
	doc, err := ParseJSON(data)
	if err != nil {
		return nil, nil, err
	}
	st := doc.Stats()
	c.log.WithFields(logrus.Fields{
		"points":  st.Points,
		"regions": st.Regions,
		"bones":   st.Bones,
		"clips":   st.Clips,
		"uvswaps": st.UvSwapMeshes,
		"anchors": st.AnchorPoints,
	}).Debug("Parsed creature json")

	size := c.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	buf, err := EncodeSized(doc, size)
	if err != nil {
		return nil, nil, fmt.Errorf("encode: %w", err)
	}
	return doc, buf, nil
}

// ConvertFile reads the JSON export at in and writes the rig buffer to out, replacing any
// existing file. It returns the written buffer.
func (c *Converter) ConvertFile(in, out string) ([]byte, error) {
	log := c.log.WithField("input", in)

	data, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", in, err)
	}
	_, buf, err := c.Convert(data)
	if err != nil {
		log.WithError(err).Error("Conversion failed")
		return nil, err
	}

	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("replace %s: %w", out, err)
	}
	if err := os.WriteFile(out, buf, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}

	log.WithFields(logrus.Fields{
		"output": out,
		"size":   len(buf),
	}).Info("Serialized flat binary file")
	return buf, nil
}
