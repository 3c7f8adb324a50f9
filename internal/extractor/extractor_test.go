package extractor

import (
	"testing"

	"oppwatch/internal/config"
	"oppwatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(config.NewDefaultExtractorConfig(), zerolog.Nop())
}

func TestExtract_SentinelMeansEmpty(t *testing.T) {
	markup := `<div id="opportunityannouncementwidget"><h4 class="alert alert-warning">No Data</h4></div>`

	result := newTestExtractor(t).Extract(markup)

	assert.True(t, result.RegionFound)
	assert.Equal(t, models.KindEmpty, result.State.Kind)
	assert.Empty(t, result.State.Items)
}

func TestExtract_SingleOpportunityRow(t *testing.T) {
	markup := `
	<div id="opportunityannouncementwidget">
		<table>
			<thead><tr><th>Opportunity</th><th>Download</th><th>File Name</th></tr></thead>
			<tbody>
				<tr><td>Program X</td><td><a href="#">Download</a></td><td>program_x.pdf</td></tr>
			</tbody>
		</table>
	</div>`

	result := newTestExtractor(t).Extract(markup)

	assert.True(t, result.RegionFound)
	require.Equal(t, models.KindAvailable, result.State.Kind)
	require.Len(t, result.State.Items, 1)
	assert.Equal(t, "Program X", result.State.Items[0].Name)
	assert.Equal(t, "program_x.pdf", result.State.Items[0].Detail)
}

func TestExtract_MultipleTablesPreserveOrder(t *testing.T) {
	markup := `
	<div id="opportunityannouncementwidget">
		<table><tbody>
			<tr><td>Program A</td><td></td><td>a.pdf</td></tr>
			<tr><td>Program B</td><td></td><td>b.pdf</td></tr>
		</tbody></table>
		<table><tbody>
			<tr><td>Program C</td><td></td><td>c.pdf</td></tr>
		</tbody></table>
	</div>`

	result := newTestExtractor(t).Extract(markup)

	require.Equal(t, models.KindAvailable, result.State.Kind)
	assert.Equal(t, []string{"Program A", "Program B", "Program C"}, result.State.ItemNames())
}

func TestExtract_SkipsBlankRows(t *testing.T) {
	markup := `
	<div id="opportunityannouncementwidget">
		<table><tbody>
			<tr><td>   </td><td></td></tr>
			<tr><td></td><td>Program D</td><td>d.pdf</td></tr>
		</tbody></table>
	</div>`

	result := newTestExtractor(t).Extract(markup)

	require.Equal(t, models.KindAvailable, result.State.Kind)
	require.Len(t, result.State.Items, 1)
	assert.Equal(t, "Program D", result.State.Items[0].Name)
}

func TestExtract_SentinelWinsOverCoexistingRows(t *testing.T) {
	// The sentinel check is a substring test over the whole region text
	// and precedes item extraction, so rows sharing the widget with the
	// sentinel never count.
	markup := `
	<div id="opportunityannouncementwidget">
		<h4>No Data</h4>
		<table><tbody>
			<tr><td>Program D</td><td></td><td>d.pdf</td></tr>
		</tbody></table>
	</div>`

	result := newTestExtractor(t).Extract(markup)

	assert.Equal(t, models.KindEmpty, result.State.Kind)
	assert.Empty(t, result.State.Items)
}

func TestExtract_AvailableWithoutRowsGetsPlaceholder(t *testing.T) {
	markup := `<div id="opportunityannouncementwidget"><p>Some content here</p></div>`

	result := newTestExtractor(t).Extract(markup)

	assert.True(t, result.RegionFound)
	require.Equal(t, models.KindAvailable, result.State.Kind)
	require.Len(t, result.State.Items, 1)
	assert.Equal(t, models.PlaceholderItemName, result.State.Items[0].Name)
}

func TestExtract_BlankWidgetPolicy(t *testing.T) {
	markup := `<div id="opportunityannouncementwidget">   </div>`

	tests := []struct {
		name         string
		strict       bool
		expectedKind models.AvailabilityKind
	}{
		{name: "default treats blank as available", strict: false, expectedKind: models.KindAvailable},
		{name: "strict treats blank as empty", strict: true, expectedKind: models.KindEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultExtractorConfig()
			cfg.TreatBlankWidgetAsEmpty = tt.strict
			result := NewExtractor(cfg, zerolog.Nop()).Extract(markup)

			assert.True(t, result.RegionFound)
			assert.Equal(t, tt.expectedKind, result.State.Kind)
		})
	}
}

func TestExtract_MissingWidgetFailsSafe(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{name: "unrelated content", markup: `<div id="otherwidget"><p>Some other content</p></div>`},
		{name: "empty document", markup: ""},
		{name: "not html at all", markup: "just some text"},
		{name: "severely truncated markup", markup: `<div id="opp`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestExtractor(t).Extract(tt.markup)
			assert.False(t, result.RegionFound)
			assert.Equal(t, models.KindEmpty, result.State.Kind)
			assert.Empty(t, result.State.Items)
		})
	}
}

func TestExtract_CaseInsensitiveWidgetID(t *testing.T) {
	markup := `<div id="OpportunityAnnouncementWidget"><h4>No Data</h4></div>`

	result := newTestExtractor(t).Extract(markup)

	assert.True(t, result.RegionFound)
	assert.Equal(t, models.KindEmpty, result.State.Kind)
}

func TestExtract_LooseTokenFallback(t *testing.T) {
	markup := `
	<div class="widget opportunity-panel">
		<table><tbody><tr><td>Program E</td><td></td><td>e.pdf</td></tr></tbody></table>
	</div>`

	result := newTestExtractor(t).Extract(markup)

	assert.True(t, result.RegionFound)
	require.Equal(t, models.KindAvailable, result.State.Kind)
	assert.Equal(t, []string{"Program E"}, result.State.ItemNames())
}

func TestExtract_KeywordTableFallback(t *testing.T) {
	markup := `
	<div class="content">
		<table><tbody>
			<tr><td>Program Announcement F</td><td></td><td>f.pdf</td></tr>
		</tbody></table>
	</div>`

	result := newTestExtractor(t).Extract(markup)

	assert.True(t, result.RegionFound)
	require.Equal(t, models.KindAvailable, result.State.Kind)
	assert.Equal(t, []string{"Program Announcement F"}, result.State.ItemNames())
}

func TestExtract_SentinelIsCaseSensitive(t *testing.T) {
	markup := `<div id="opportunityannouncementwidget"><h4>no data</h4></div>`

	result := newTestExtractor(t).Extract(markup)

	// A lowercase variant is not the sentinel; presence is inferred from
	// the absence of the exact phrase.
	assert.Equal(t, models.KindAvailable, result.State.Kind)
}
