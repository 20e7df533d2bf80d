package sector

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("Het A-team, ZORG_2022 é")
	assert.Equal(t, []string{"het", "team", "zorg_2022"}, got)
}

func TestVectorizer(t *testing.T) {
	var v Vectorizer
	v.Fit([]string{"aa bb", "aa"})

	require.Equal(t, 2, v.Size())
	assert.Equal(t, 0, v.Vocabulary["aa"])
	assert.Equal(t, 1, v.Vocabulary["bb"])
	assert.InDelta(t, 1.0, v.IDF[0], 1e-12)
	assert.InDelta(t, 1+math.Log(1.5), v.IDF[1], 1e-12)

	vec := v.Transform("aa bb bb onbekend")
	require.Len(t, vec, 2)
	assert.InDelta(t, 2*(1+math.Log(1.5)), vec[1].Value/vec[0].Value, 1e-9)
	assert.InDelta(t, 1.0, vec[0].Value*vec[0].Value+vec[1].Value*vec[1].Value, 1e-9)

	assert.Empty(t, v.Transform("niets bekends"))
}

func toyCorpus() []Example {
	return []Example{
		{Text: "zorg ziekenhuis patiënten verpleging", Sector: "Gezondheid"},
		{Text: "natuur bos dieren bescherming", Sector: "Natuur"},
		{Text: "ziekenhuis zorg artsen", Sector: "Gezondheid"},
		{Text: "dieren natuur weidevogels", Sector: "Natuur"},
		{Text: "onderwijs school leerlingen", Sector: "Onderwijs"},
		{Text: "school leraren onderwijs", Sector: "Onderwijs"},
	}
}

func TestTrain_ToyCorpus(t *testing.T) {
	m, eval, err := Train(toyCorpus(), TrainOptions{TrainSize: 1, Alpha: DefaultAlpha, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Gezondheid", "Natuur", "Onderwijs"}, m.Labels)
	assert.Equal(t, "Gezondheid", m.Predict("Het ziekenhuis zorgt voor patiënten."))
	assert.Equal(t, "Natuur", m.Predict("Bescherming van dieren in het bos"))
	assert.Equal(t, "Onderwijs", m.Predict("Leerlingen van onze school"))

	assert.Equal(t, 6, eval.TrainSize)
	assert.Equal(t, 0, eval.TestSize)
	assert.Equal(t, 0.0, eval.Accuracy())
}

func TestTrain_Split(t *testing.T) {
	_, eval, err := Train(toyCorpus(), DefaultTrainOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, eval.TrainSize)
	assert.Equal(t, 2, eval.TestSize)
	total := 0
	for _, row := range eval.Confusion {
		for _, n := range row {
			total += n
		}
	}
	assert.Equal(t, 2, total)
	assert.Contains(t, eval.String(), "Confusion matrix")
}

func TestTrain_Errors(t *testing.T) {
	_, _, err := Train(nil, DefaultTrainOptions())
	assert.True(t, errors.Is(err, ErrNoTrainingData))

	_, _, err = Train(toyCorpus(), TrainOptions{TrainSize: 1.5})
	assert.Error(t, err)
}

func TestModel_SaveLoad(t *testing.T) {
	m, _, err := Train(toyCorpus(), TrainOptions{TrainSize: 1, Alpha: DefaultAlpha, Seed: 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Pretrained", "sector.msgpack")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Labels, loaded.Labels)
	assert.Equal(t, m.Predict("weidevogels en dieren"), loaded.Predict("weidevogels en dieren"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.msgpack"))
	assert.Error(t, err)
}

func TestModel_PredictEmpty(t *testing.T) {
	var m *Model
	assert.Equal(t, "", m.Predict("tekst"))
}

func TestReadManifest_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "train.csv")
	content := strings.Join([]string{
		"Bestand,Sector,Problem",
		"a.pdf,Zorg,nee",
		"b.pdf,,nee",
		"c.pdf,Natuur,",
		"/abs/d.pdf,Natuur,ja",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []ManifestRow{
		{File: filepath.Join(dir, "a.pdf"), Sector: "Zorg"},
		{File: "/abs/d.pdf", Sector: "Natuur"},
	}, rows)
}

func TestReadManifest_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "train.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Problem", "Bestand", "Sector"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"x", "verslag.pdf", "Cultuur"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []ManifestRow{{File: filepath.Join(dir, "verslag.pdf"), Sector: "Cultuur"}}, rows)
}

func TestReadManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadManifest(filepath.Join(dir, "train.json"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Bestand,Sector\na.pdf,Zorg\n"), 0644))
	_, err = ReadManifest(path)
	assert.ErrorContains(t, err, "Problem")
}
