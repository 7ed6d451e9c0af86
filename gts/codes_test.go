package gts_test

import (
	"errors"
	"testing"

	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/gts/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResult(t *testing.T) {
	cases := map[model.Result]gts.ResultKind{
		0:     gts.ResultOK,
		1:     gts.ResultExecError,
		2:     gts.ResultLicense,
		7:     gts.ResultInvalidParam,
		8:     gts.ResultFirmware,
		-1:    gts.ResultCommFailure,
		-2:    gts.ResultCommFailure,
		-3:    gts.ResultCommFailure,
		-4:    gts.ResultCommFailure,
		-5:    gts.ResultCommFailure,
		-6:    gts.ResultOpenFailed,
		-7:    gts.ResultUnresponsive,
		-8:    gts.ResultBusy,
		3:     gts.ResultUnknown,
		-9:    gts.ResultUnknown,
		32767: gts.ResultUnknown,
	}
	for rc, want := range cases {
		assert.Equal(t, want, gts.ClassifyResult(rc), "rc=%d", rc)
	}
}

func TestClassifyResultIsTotal(t *testing.T) {
	for rc := -32768; rc <= 32767; rc++ {
		kind := gts.ClassifyResult(model.Result(rc))
		require.NotEmpty(t, kind.String())
		if rc != 0 {
			require.NotEqual(t, gts.ResultOK, kind, "rc=%d", rc)
		}
	}
}

func TestCheckResult(t *testing.T) {
	require.NoError(t, gts.CheckResult(0, model.CmdOpen, 3))

	err := gts.CheckResult(-8, model.CmdUpdate, 3)
	var fault *gts.CommandFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, model.Result(-8), fault.Code)
	assert.Equal(t, int16(3), fault.CardID)
	assert.Equal(t, model.CmdUpdate, fault.Command)
	assert.Equal(t, "cardNum : 3; GT_Update: command resource busy (rc=-8)", err.Error())

	assert.True(t, errors.Is(err, &gts.CommandFault{Kind: gts.ResultBusy}))
	assert.False(t, errors.Is(err, &gts.CommandFault{Kind: gts.ResultCommFailure}))
}
