package extractor

import (
	"strings"

	"oppwatch/internal/config"
	"oppwatch/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// ExtractionResult carries the availability state plus whether any locator
// strategy actually found the widget region. RegionFound lets the caller
// decide to re-render the page with the headless fallback; the state itself
// already fails safe toward EMPTY.
type ExtractionResult struct {
	State       models.AvailabilityState
	RegionFound bool
}

// Extractor locates the opportunity widget inside arbitrary markup and
// reduces it to an AvailabilityState.
type Extractor struct {
	cfg        config.ExtractorConfig
	strategies []LocatorStrategy
	logger     zerolog.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor(cfg config.ExtractorConfig, logger zerolog.Logger) *Extractor {
	return &Extractor{
		cfg:        cfg,
		strategies: locatorStrategies(cfg.WidgetID, cfg.WidgetTokens, cfg.TableKeywords),
		logger:     logger.With().Str("component", "Extractor").Logger(),
	}
}

// Extract reduces markup to an AvailabilityState. It never returns an
// error: unparseable markup and an unlocatable widget both resolve to
// EMPTY, so transient structural noise on the page cannot produce a false
// "new availability" notification.
func (e *Extractor) Extract(markup string) ExtractionResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		e.logger.Warn().Err(err).Msg("Markup could not be parsed, treating as empty")
		return ExtractionResult{State: emptyState()}
	}

	region := e.locateRegion(doc)
	if region == nil {
		e.logger.Debug().Msg("Widget region not found in markup")
		return ExtractionResult{State: emptyState()}
	}

	return ExtractionResult{State: e.extractFromRegion(region), RegionFound: true}
}

// locateRegion tries each locator strategy in priority order.
func (e *Extractor) locateRegion(doc *goquery.Document) *goquery.Selection {
	for _, strategy := range e.strategies {
		if region := strategy(doc); region != nil {
			return region
		}
	}
	return nil
}

// extractFromRegion decides kind and, for AVAILABLE regions, itemizes the
// listed opportunities. Absence is decided by the sentinel phrase alone:
// the positive table structure may be populated asynchronously, so lack of
// rows must not downgrade a widget to confirmed-empty.
func (e *Extractor) extractFromRegion(region *goquery.Selection) models.AvailabilityState {
	text := region.Text()

	if strings.Contains(text, e.cfg.SentinelText) {
		return emptyState()
	}

	if e.cfg.TreatBlankWidgetAsEmpty && strings.TrimSpace(text) == "" {
		e.logger.Debug().Msg("Widget blank and strict policy enabled, treating as empty")
		return emptyState()
	}

	items := e.extractItems(region)
	if len(items) == 0 {
		items = []models.OpportunityItem{{Name: models.PlaceholderItemName}}
	}
	return models.AvailabilityState{Kind: models.KindAvailable, Items: items}
}

// extractItems scans every table inside the region, preserving table order
// then row order. A panic while walking rows is absorbed and treated as "no
// rows found": availability was already decided by the sentinel check and
// must not be lost to malformed detail markup.
func (e *Extractor) extractItems(region *goquery.Selection) (items []models.OpportunityItem) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Interface("panic", r).Msg("Row extraction failed, continuing without item details")
			items = nil
		}
	}()

	// The table-scan fallback hands back a table itself rather than a
	// containing element.
	if region.Is("table") {
		return e.extractTableRows(region)
	}

	region.Find("table").Each(func(_ int, table *goquery.Selection) {
		items = append(items, e.extractTableRows(table)...)
	})
	return items
}

// extractTableRows pulls item descriptors out of one table. Data rows are
// the rows of an explicit tbody when present, otherwise every row after the
// first (assumed header) row.
func (e *Extractor) extractTableRows(table *goquery.Selection) []models.OpportunityItem {
	rows := table.Find("tbody tr")
	skipHeader := false
	if rows.Length() == 0 {
		rows = table.Find("tr")
		skipHeader = true
	}

	var items []models.OpportunityItem
	rows.Each(func(i int, row *goquery.Selection) {
		if skipHeader && i == 0 {
			return
		}
		if item, ok := e.extractRow(row); ok {
			items = append(items, item)
		}
	})
	return items
}

// extractRow converts a single data row into an item descriptor. The first
// non-empty cell becomes the name; a third cell, when present, becomes the
// detail. Rows with no name are skipped. A sentinel-bearing row never gets
// here: the region-level sentinel check already classified the widget EMPTY.
func (e *Extractor) extractRow(row *goquery.Selection) (models.OpportunityItem, bool) {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return models.OpportunityItem{}, false
	}

	var name string
	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if trimmed := strings.TrimSpace(cell.Text()); trimmed != "" {
			name = trimmed
			return false
		}
		return true
	})

	if name == "" {
		return models.OpportunityItem{}, false
	}

	item := models.OpportunityItem{Name: name}
	if cells.Length() >= 3 {
		item.Detail = strings.TrimSpace(cells.Eq(2).Text())
	}
	return item, true
}

func emptyState() models.AvailabilityState {
	return models.AvailabilityState{Kind: models.KindEmpty}
}
