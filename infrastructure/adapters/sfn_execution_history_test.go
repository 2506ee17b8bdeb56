package adapters

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"highlight-reel-pipeline/domain"
)

func TestTranslateHistoryEvent(t *testing.T) {
	tests := []struct {
		name     string
		raw      *sfn.HistoryEvent
		want     domain.ExecutionEvent
		wantKept bool
	}{
		{
			name: "task state entered",
			raw: &sfn.HistoryEvent{
				Type:                    aws.String("TaskStateEntered"),
				StateEnteredEventDetails: &sfn.StateEnteredEventDetails{Name: aws.String("SelectSegments")},
			},
			want:     domain.ExecutionEvent{Type: domain.StateEntered, StateName: "SelectSegments"},
			wantKept: true,
		},
		{
			name: "map state entered",
			raw: &sfn.HistoryEvent{
				Type:                    aws.String("MapStateEntered"),
				StateEnteredEventDetails: &sfn.StateEnteredEventDetails{Name: aws.String("AnalyzeSegmentsMap")},
			},
			want:     domain.ExecutionEvent{Type: domain.MapEntered, StateName: "AnalyzeSegmentsMap"},
			wantKept: true,
		},
		{
			name: "map state exited",
			raw: &sfn.HistoryEvent{
				Type:                   aws.String("MapStateExited"),
				StateExitedEventDetails: &sfn.StateExitedEventDetails{Name: aws.String("AnalyzeSegmentsMap")},
			},
			want:     domain.ExecutionEvent{Type: domain.MapExited, StateName: "AnalyzeSegmentsMap"},
			wantKept: true,
		},
		{
			name: "map started carries iteration count",
			raw: &sfn.HistoryEvent{
				Type:                        aws.String("MapStateStarted"),
				MapStateStartedEventDetails: &sfn.MapStateStartedEventDetails{Length: aws.Int64(12)},
			},
			want:     domain.ExecutionEvent{Type: domain.MapStarted, IterationCount: 12},
			wantKept: true,
		},
		{
			name:     "map iteration succeeded",
			raw:      &sfn.HistoryEvent{Type: aws.String("MapIterationSucceeded")},
			want:     domain.ExecutionEvent{Type: domain.MapIterationSucceeded},
			wantKept: true,
		},
		{
			name:     "engine bookkeeping dropped",
			raw:      &sfn.HistoryEvent{Type: aws.String("TaskScheduled")},
			wantKept: false,
		},
		{
			name:     "execution lifecycle dropped",
			raw:      &sfn.HistoryEvent{Type: aws.String("ExecutionStarted")},
			wantKept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kept := translateHistoryEvent(tt.raw)
			require.Equal(t, tt.wantKept, kept)
			if kept {
				assert.Equal(t, tt.want.Type, got.Type)
				assert.Equal(t, tt.want.StateName, got.StateName)
				assert.Equal(t, tt.want.IterationCount, got.IterationCount)
			}
		})
	}
}
