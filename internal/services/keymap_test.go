package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"keymirror/internal/domain"
	portsmocks "keymirror/internal/ports/mocks"
)

func records(pairs ...string) []domain.Record {
	var out []domain.Record
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Record{Key: pairs[i], Command: pairs[i+1]})
	}
	return out
}

func TestConvert_RemapsAndSaves(t *testing.T) {
	source := portsmocks.NewMockBindingSource(t)
	sink := portsmocks.NewMockBindingSink(t)
	runs := portsmocks.NewMockRunRepository(t)

	source.EXPECT().Describe().Return("keys/default.json")
	source.EXPECT().Load(mock.Anything).Return(records("Ctrl+K", "foo", "shift+k", "bar"), nil)
	sink.EXPECT().Describe().Return("stdout")

	expected := records("ctrl+k", "-foo", "meta+k", "foo")
	sink.EXPECT().Save(mock.Anything, expected).Return(nil)

	var recorded domain.Run
	runs.EXPECT().Add(mock.Anything, mock.Anything).
		Run(func(_ context.Context, run domain.Run) { recorded = run }).
		Return(nil)
	runs.EXPECT().Prune(mock.Anything, 50).Return(0, nil)

	service := NewKeymapService(NewRemapper(PolicyDrop, 2), runs, nil, 50)

	result, err := service.Convert(context.Background(), ConvertParams{Source: source, Sink: sink})

	require.NoError(t, err)
	assert.Equal(t, expected, result.Records)
	assert.Equal(t, domain.RemapStats{Input: 2, Remapped: 1, Dropped: 1, Output: 2}, result.Stats)
	assert.NotEmpty(t, result.RunID)

	assert.Equal(t, result.RunID, recorded.ID)
	assert.Equal(t, "keys/default.json", recorded.Source)
	assert.Equal(t, "stdout", recorded.Destination)
	assert.Equal(t, "drop", recorded.Policy)
	assert.Equal(t, expected, recorded.Records)
	assert.False(t, recorded.FinishedAt.Before(recorded.StartedAt))
}

func TestConvert_LoadFailureSavesNothing(t *testing.T) {
	source := portsmocks.NewMockBindingSource(t)
	sink := portsmocks.NewMockBindingSink(t)
	runs := portsmocks.NewMockRunRepository(t)

	source.EXPECT().Describe().Return("in.json")
	source.EXPECT().Load(mock.Anything).Return(nil, domain.ErrNotAnArray)
	sink.EXPECT().Describe().Return("out.json")

	service := NewKeymapService(NewRemapper(PolicyDrop, 1), runs, nil, 50)

	result, err := service.Convert(context.Background(), ConvertParams{Source: source, Sink: sink})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotAnArray)
	assert.Contains(t, err.Error(), "in.json")
	sink.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	runs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestConvert_SaveFailureIsNotRecorded(t *testing.T) {
	source := portsmocks.NewMockBindingSource(t)
	sink := portsmocks.NewMockBindingSink(t)
	runs := portsmocks.NewMockRunRepository(t)

	source.EXPECT().Describe().Return("in.json")
	source.EXPECT().Load(mock.Anything).Return(records("ctrl+a", "a"), nil)
	sink.EXPECT().Describe().Return("out.json")
	sink.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full"))

	service := NewKeymapService(NewRemapper(PolicyDrop, 1), runs, nil, 50)

	_, err := service.Convert(context.Background(), ConvertParams{Source: source, Sink: sink})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save keybindings to out.json")
	runs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestConvert_HistoryFailureDoesNotFail(t *testing.T) {
	source := portsmocks.NewMockBindingSource(t)
	sink := portsmocks.NewMockBindingSink(t)
	runs := portsmocks.NewMockRunRepository(t)

	source.EXPECT().Describe().Return("in.json")
	source.EXPECT().Load(mock.Anything).Return(records("ctrl+a", "a"), nil)
	sink.EXPECT().Describe().Return("out.json")
	sink.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	runs.EXPECT().Add(mock.Anything, mock.Anything).Return(errors.New("database is locked"))

	service := NewKeymapService(NewRemapper(PolicyDrop, 1), runs, nil, 50)

	result, err := service.Convert(context.Background(), ConvertParams{Source: source, Sink: sink})

	require.NoError(t, err)
	assert.Empty(t, result.RunID)
	assert.Len(t, result.Records, 2)
}

func TestConvert_NoHistory(t *testing.T) {
	source := portsmocks.NewMockBindingSource(t)
	sink := portsmocks.NewMockBindingSink(t)
	runs := portsmocks.NewMockRunRepository(t)

	source.EXPECT().Describe().Return("in.json")
	source.EXPECT().Load(mock.Anything).Return(records("shift+a", "a"), nil)
	sink.EXPECT().Describe().Return("out.json")
	sink.EXPECT().Save(mock.Anything, []domain.Record{}).Return(nil)

	service := NewKeymapService(NewRemapper(PolicyDrop, 1), runs, nil, 50)

	result, err := service.Convert(context.Background(), ConvertParams{Source: source, Sink: sink, NoHistory: true})

	require.NoError(t, err)
	assert.Empty(t, result.RunID)
	assert.Equal(t, 1, result.Stats.Dropped)
}

func TestConvert_WithoutRunWriter(t *testing.T) {
	source := portsmocks.NewMockBindingSource(t)
	sink := portsmocks.NewMockBindingSink(t)

	source.EXPECT().Describe().Return("in.json")
	source.EXPECT().Load(mock.Anything).Return(records("shift+a", "a"), nil)
	sink.EXPECT().Describe().Return("out.json")
	sink.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	service := NewKeymapService(NewRemapper(PolicyPassThrough, 1), nil, nil, 0)

	result, err := service.Convert(context.Background(), ConvertParams{Source: source, Sink: sink})

	require.NoError(t, err)
	assert.Equal(t, records("shift+a", "a"), result.Records)
}
