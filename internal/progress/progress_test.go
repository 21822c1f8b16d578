package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/pipeline"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

type mockBar struct {
	added        int
	descriptions []string
	finished     bool
}

func (m *mockBar) Add(n int) error {
	m.added += n
	return nil
}

func (m *mockBar) Describe(d string) {
	m.descriptions = append(m.descriptions, d)
}

func (m *mockBar) Finish() error {
	m.finished = true
	return nil
}

func TestStageBarAdvancesPerStage(t *testing.T) {
	bar := &mockBar{}
	sb := newStageBarWith(bar)

	p, err := pipeline.New(mapping.Default(),
		pipeline.WithLogger(logging.NewNopLogger()),
		pipeline.WithHook(sb.Advance),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), records.NewTable("cortex", nil), records.NewTable("jstore", nil))
	require.NoError(t, err)

	assert.Equal(t, len(pipeline.Stages()), bar.added)
	assert.Equal(t, "loaded", bar.descriptions[0])
	assert.Equal(t, "subjects", bar.descriptions[len(bar.descriptions)-1])

	require.NoError(t, sb.Finish())
	assert.True(t, bar.finished)
}

func TestNewStageBarRenders(t *testing.T) {
	var buf bytes.Buffer
	sb := NewStageBar(&buf)
	require.NoError(t, sb.Advance(pipeline.Snapshot{Stage: pipeline.StageLoaded}))
	assert.NotEmpty(t, buf.String())
}
