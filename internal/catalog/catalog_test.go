package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy00614/sury-questions/internal/model"
)

func TestCatalog_Valid(t *testing.T) {
	assert.NoError(t, Validate())
}

func TestCatalog_OrderAndSize(t *testing.T) {
	questions := Questions()
	require.Len(t, questions, 17)

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID, "catalog must be ordered by id")
	}
}

func TestCatalog_OptionsMatchType(t *testing.T) {
	for _, q := range Questions() {
		switch q.Type {
		case model.QuestionTypeSingle, model.QuestionTypeMultiple:
			assert.NotEmpty(t, q.Options, "question %d", q.ID)
		case model.QuestionTypeText:
			assert.Empty(t, q.Options, "question %d", q.ID)
		default:
			t.Fatalf("question %d has unknown type %q", q.ID, q.Type)
		}
	}
}

func TestCatalog_AndroidPriceVisibility(t *testing.T) {
	price, ok := ByID(AndroidPriceQuestionID)
	require.True(t, ok)
	require.NotNil(t, price.VisibleIf)

	assert.False(t, price.IsVisible(model.AnswerSet{}))

	android := model.AnswerSet{}
	android.Set(DeviceQuestionID, model.Single("android"))
	assert.True(t, price.IsVisible(android))

	ios := model.AnswerSet{}
	ios.Set(DeviceQuestionID, model.Single("ios"))
	assert.False(t, price.IsVisible(ios))
}

func TestCatalog_OnlyPriceQuestionConditional(t *testing.T) {
	for _, q := range Questions() {
		if q.ID == AndroidPriceQuestionID {
			continue
		}
		assert.Nil(t, q.VisibleIf, "question %d", q.ID)
	}
}

func TestCatalog_ByID(t *testing.T) {
	device, ok := ByID(DeviceQuestionID)
	require.True(t, ok)
	assert.Equal(t, model.QuestionTypeSingle, device.Type)
	assert.True(t, device.OptionValue("android"))
	assert.True(t, device.OptionValue("ios"))
	assert.False(t, device.OptionValue("windows"))

	_, ok = ByID(99)
	assert.False(t, ok)
}
