package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjeelani/soundseq/pkg/submission"
)

type countingProcessor struct {
	err   error
	calls int
}

func (p *countingProcessor) ApplySFX(context.Context, string) error {
	p.calls++
	return p.err
}

func TestSubmitOnceExitCodes(t *testing.T) {
	tests := []struct {
		name      string
		link      string
		procErr   error
		wantCode  int
		wantCalls int
	}{
		{name: "accepted", link: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", wantCode: 0, wantCalls: 1},
		{name: "invalid link", link: "https://vimeo.com/123", wantCode: 1, wantCalls: 0},
		{name: "processing rejected", link: "https://youtu.be/dQw4w9WgXcQ", procErr: errors.New("boom"), wantCode: 1, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := &countingProcessor{err: tt.procErr}
			code := submitOnce(submission.NewController(proc), tt.link)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantCalls, proc.calls)
		})
	}
}
