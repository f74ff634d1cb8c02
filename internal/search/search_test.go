package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldscope/api/internal/models"
)

func soilFixture() []models.SoilReport {
	return []models.SoilReport{
		{SoilType: models.SoilClay, MoistureContent: 45, PHLevel: 6.5, CompactionLevel: 85},
		{SoilType: models.SoilSand, MoistureContent: 12, PHLevel: 7, CompactionLevel: 60},
		{SoilType: models.SoilLoam, MoistureContent: 30, PHLevel: 5.5, CompactionLevel: 72},
	}
}

func TestSoil_EmptyQueryMatchesAll(t *testing.T) {
	reports := soilFixture()
	assert.Len(t, Soil(reports, ""), len(reports))
}

func TestSoil_DefaultFields(t *testing.T) {
	reports := soilFixture()

	got := Soil(reports, "clay")
	assert.Len(t, got, 1)
	assert.Equal(t, models.SoilClay, got[0].SoilType)

	// 7 appears in pH 7 and in compaction 72.
	got = Soil(reports, "7")
	assert.Len(t, got, 2)
}

func TestSoil_CaseInsensitive(t *testing.T) {
	got := Soil(soilFixture(), "CLAY")
	assert.Len(t, got, 1)
}

func TestSoil_PHLevelPrefix(t *testing.T) {
	got := Soil(soilFixture(), "ph level: 6.5")
	assert.Len(t, got, 1)
	assert.Equal(t, models.SoilClay, got[0].SoilType)

	// Substring match within the field.
	got = Soil(soilFixture(), "ph level:5")
	assert.Len(t, got, 2)
}

func TestSoil_MoisturePrefix(t *testing.T) {
	got := Soil(soilFixture(), "moisture content:12")
	assert.Len(t, got, 1)
	assert.Equal(t, models.SoilSand, got[0].SoilType)
}

func TestSoil_CompactionPrefix(t *testing.T) {
	got := Soil(soilFixture(), "compaction:85")
	assert.Len(t, got, 1)
	assert.Equal(t, models.SoilClay, got[0].SoilType)
}

func TestSoil_SoilTypePrefix(t *testing.T) {
	got := Soil(soilFixture(), "soil type:loam")
	assert.Len(t, got, 1)
	assert.Equal(t, models.SoilLoam, got[0].SoilType)
}

func TestSoil_PrefixPriority(t *testing.T) {
	// "ph level:" outranks "soil type:" so the trailing soil type text is
	// treated as part of the pH value and nothing matches.
	got := Soil(soilFixture(), "ph level: soil type: clay")
	assert.Empty(t, got)
}

func TestSoil_PrefixRestrictsToField(t *testing.T) {
	// "clay" is present in the list but not in any pH value.
	got := Soil(soilFixture(), "ph level:clay")
	assert.Empty(t, got)
}

func TestEnvironmental_Fields(t *testing.T) {
	reports := []models.EnvironmentalReport{
		{Location: "North Ridge", Temperature: "21.5", AirQualityIndex: 42, WaterQuality: models.WaterClean},
		{Location: "Dockside", Temperature: "38", AirQualityIndex: 150, WaterQuality: models.WaterPolluted},
	}

	assert.Len(t, Environmental(reports, "ridge"), 1)
	assert.Len(t, Environmental(reports, "38"), 1)
	assert.Len(t, Environmental(reports, "150"), 1)
	assert.Len(t, Environmental(reports, "polluted"), 1)
	assert.Len(t, Environmental(reports, ""), 2)
	assert.Empty(t, Environmental(reports, "volcano"))
}

func TestSurveyor_Fields(t *testing.T) {
	reports := []models.SurveyorReport{
		{LandArea: 1200.5, Elevation: 35, Topography: models.TopographyFlat},
		{LandArea: 300, Elevation: 180, Topography: models.TopographyHilly},
	}

	assert.Len(t, Surveyor(reports, "1200.5"), 1)
	assert.Len(t, Surveyor(reports, "180"), 1)
	assert.Len(t, Surveyor(reports, "hilly"), 1)
	assert.Len(t, Surveyor(reports, ""), 2)
	assert.Empty(t, Surveyor(reports, "sloped"))
}

func TestFormatNumber_NoTrailingZeros(t *testing.T) {
	assert.Equal(t, "6.5", formatNumber(6.5))
	assert.Equal(t, "7", formatNumber(7))
}
