package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/infra-ingest/internal/domain"
)

const sample = `FO 2.5 Geo 1.1
KJ ETRS-TM35FIN N2000
OM Espoo
TT PA
XY 6672000.0 385000.0 12.5 24052023 BH1
0.2 0 12 Sa
0.4 -5 - -
0.6 25 4 SaSi
-1 KA
RK bogus`

func parseSample(t *testing.T) *domain.InfraFile {
	t.Helper()
	f, err := domain.Parse(domain.Source{Path: "site/BH1.tek", Encoding: "utf-8", Lines: strings.Split(sample, "\n")})
	require.NoError(t, err)
	return f
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"text", FormatText},
		{"JSON", FormatJSON},
		{" yaml ", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, parseSample(t)))
	out := buf.String()

	assert.Contains(t, out, "  INFRA FILE")
	assert.Contains(t, out, "File path:")
	assert.Contains(t, out, "site/BH1.tek")
	assert.Contains(t, out, "Coordinate system:")
	assert.Contains(t, out, "ETRS-TM35")
	assert.Contains(t, out, "  INVESTIGATION 1:")
	assert.Contains(t, out, "Weight sounding test")
	assert.Contains(t, out, "Bedrock contact (verified rock)")
	assert.Contains(t, out, "Point ID:")
	assert.Contains(t, out, "Soil layers:")
	assert.Contains(t, out, "Observation rows:")
	assert.Contains(t, out, "Diagnostics:")

	assert.NotContains(t, out, "Investigator:", "missing fields are omitted")
}

func TestJSONAndYAMLAgree(t *testing.T) {
	f := parseSample(t)

	var jbuf, ybuf bytes.Buffer
	require.NoError(t, JSON(&jbuf, f))
	require.NoError(t, YAML(&ybuf, f))

	var fromJSON, fromYAML map[string]any
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &fromJSON))
	require.NoError(t, yaml.Unmarshal(ybuf.Bytes(), &fromYAML))

	assert.Equal(t, "site/BH1.tek", fromYAML["source"].(map[string]any)["path"])
	assert.Equal(t, fromJSON["spatial"], fromYAML["spatial"])
	assert.NotContains(t, ybuf.String(), "{", "flow style is reset")
}

func TestWriteDispatches(t *testing.T) {
	f := parseSample(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, f))
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	buf.Reset()
	require.NoError(t, Write(&buf, FormatText, f))
	assert.Contains(t, buf.String(), "INFRA FILE")
}

func TestSummary(t *testing.T) {
	counts := map[domain.MethodToken]int{
		domain.MethodVP: 1,
		domain.MethodPA: 2,
		domain.MethodNO: 0,
	}

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, counts))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "METHOD"))
	assert.True(t, strings.HasPrefix(lines[2], "PA"))
	assert.Contains(t, lines[2], "Weight sounding test")
	assert.True(t, strings.HasPrefix(lines[3], "VP"))
	assert.Regexp(t, `^TOTAL\s+3$`, lines[4])
}
