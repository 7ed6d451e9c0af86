//go:build gts

// Package native связывает model.CommandPort с библиотекой контроллера gts через cgo.
// Собирается только с тегом gts: go build -tags gts.
package native

/*
#cgo CFLAGS: -I${SRCDIR}/../../
#cgo LDFLAGS: -L${SRCDIR}/../../ -lgts -Wl,-rpath,'$ORIGIN'

#include <stdlib.h>
#include "gts.h"

short go_gt_get_sts(short card, short axis, long* sts) {
    unsigned long clk;
    return GT_GetSts(card, axis, sts, 1, &clk);
}

short go_gt_get_enc_pos(short card, short axis, double* pos) {
    unsigned long clk;
    return GT_GetAxisEncPos(card, axis, pos, 1, &clk);
}

short go_gt_get_adc(short card, short ch, double* v) {
    unsigned long clk;
    return GT_GetAdc(card, ch, v, 1, &clk);
}

short go_gt_get_dac(short card, short ch, short* v) {
    unsigned long clk;
    return GT_GetDac(card, ch, v, 1, &clk);
}

short go_gt_set_dac(short card, short ch, short v) {
    return GT_SetDac(card, ch, &v, 1);
}

short go_gt_get_home_status(short card, short axis, short* run, short* stage, short* err) {
    THomeStatus st;
    short rc = GT_GetHomeStatus(card, axis, &st);
    *run = st.run;
    *stage = st.stage;
    *err = st.error;
    return rc;
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/iwtcode/googolAdapter/gts/model"
)

// Port - CommandPort поверх библиотеки gts. Вызовы библиотеки сериализуются.
type Port struct {
	mu sync.Mutex
}

var _ model.CommandPort = (*Port)(nil)

// New возвращает порт библиотеки контроллера.
func New() (model.CommandPort, error) {
	return &Port{}, nil
}

func (p *Port) call(fn func() C.short) model.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return model.Result(fn())
}

func (p *Port) Open(card, channel, param int16) model.Result {
	return p.call(func() C.short { return C.GT_Open(C.short(card), C.short(channel), C.short(param)) })
}

func (p *Port) Close(card int16) model.Result {
	return p.call(func() C.short { return C.GT_Close(C.short(card)) })
}

func (p *Port) Reset(card int16) model.Result {
	return p.call(func() C.short { return C.GT_Reset(C.short(card)) })
}

func (p *Port) LoadConfig(card int16, path string) model.Result {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	return p.call(func() C.short { return C.GT_LoadConfig(C.short(card), cPath) })
}

func (p *Port) ClearStatus(card, axis, count int16) model.Result {
	return p.call(func() C.short { return C.GT_ClrSts(C.short(card), C.short(axis), C.short(count)) })
}

func (p *Port) GetTrapPrm(card, axis int16) (model.TrapPrm, model.Result) {
	var prm C.TTrapPrm
	rc := p.call(func() C.short { return C.GT_GetTrapPrm(C.short(card), C.short(axis), &prm) })
	return model.TrapPrm{
		Acc:        float64(prm.acc),
		Dec:        float64(prm.dec),
		VelStart:   float64(prm.velStart),
		SmoothTime: int16(prm.smoothTime),
	}, rc
}

func (p *Port) SetTrapPrm(card, axis int16, v model.TrapPrm) model.Result {
	prm := C.TTrapPrm{
		acc:        C.double(v.Acc),
		dec:        C.double(v.Dec),
		velStart:   C.double(v.VelStart),
		smoothTime: C.short(v.SmoothTime),
	}
	return p.call(func() C.short { return C.GT_SetTrapPrm(C.short(card), C.short(axis), &prm) })
}

func (p *Port) PrfTrap(card, axis int16) model.Result {
	return p.call(func() C.short { return C.GT_PrfTrap(C.short(card), C.short(axis)) })
}

func (p *Port) SetVel(card, axis int16, vel float64) model.Result {
	return p.call(func() C.short { return C.GT_SetVel(C.short(card), C.short(axis), C.double(vel)) })
}

func (p *Port) SetPos(card, axis int16, pos int32) model.Result {
	return p.call(func() C.short { return C.GT_SetPos(C.short(card), C.short(axis), C.long(pos)) })
}

func (p *Port) Update(card int16, mask int32) model.Result {
	return p.call(func() C.short { return C.GT_Update(C.short(card), C.long(mask)) })
}

func (p *Port) GetHomePrm(card, axis int16) (model.HomePrm, model.Result) {
	var prm C.THomePrm
	rc := p.call(func() C.short { return C.GT_GetHomePrm(C.short(card), C.short(axis), &prm) })
	return model.HomePrm{
		Mode:                int16(prm.mode),
		MoveDir:             int16(prm.moveDir),
		IndexDir:            int16(prm.indexDir),
		Edge:                int16(prm.edge),
		TriggerIndex:        int16(prm.triggerIndex),
		VelHigh:             float64(prm.velHigh),
		VelLow:              float64(prm.velLow),
		Acc:                 float64(prm.acc),
		Dec:                 float64(prm.dec),
		SmoothTime:          int16(prm.smoothTime),
		HomeOffset:          int32(prm.homeOffset),
		SearchHomeDistance:  int32(prm.searchHomeDistance),
		SearchIndexDistance: int32(prm.searchIndexDistance),
		EscapeStep:          int32(prm.escapeStep),
		Pad2_1:              int16(prm.pad2[1]),
	}, rc
}

// GoHome перечитывает запись с платы, чтобы сохранить поля, которых нет в model.HomePrm.
func (p *Port) GoHome(card, axis int16, v model.HomePrm) model.Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	var prm C.THomePrm
	if rc := C.GT_GetHomePrm(C.short(card), C.short(axis), &prm); rc != 0 {
		return model.Result(rc)
	}
	prm.mode = C.short(v.Mode)
	prm.moveDir = C.short(v.MoveDir)
	prm.indexDir = C.short(v.IndexDir)
	prm.edge = C.short(v.Edge)
	prm.triggerIndex = C.short(v.TriggerIndex)
	prm.velHigh = C.double(v.VelHigh)
	prm.velLow = C.double(v.VelLow)
	prm.acc = C.double(v.Acc)
	prm.dec = C.double(v.Dec)
	prm.smoothTime = C.short(v.SmoothTime)
	prm.homeOffset = C.long(v.HomeOffset)
	prm.searchHomeDistance = C.long(v.SearchHomeDistance)
	prm.searchIndexDistance = C.long(v.SearchIndexDistance)
	prm.escapeStep = C.long(v.EscapeStep)
	prm.pad2[1] = C.short(v.Pad2_1)
	return model.Result(C.GT_GoHome(C.short(card), C.short(axis), &prm))
}

func (p *Port) GetHomeStatus(card, axis int16) (model.HomeStatus, model.Result) {
	var run, stage, errCode C.short
	rc := p.call(func() C.short {
		return C.go_gt_get_home_status(C.short(card), C.short(axis), &run, &stage, &errCode)
	})
	return model.HomeStatus{Run: int16(run), Stage: int16(stage), Error: int16(errCode)}, rc
}

func (p *Port) ZeroPos(card, axis, count int16) model.Result {
	return p.call(func() C.short { return C.GT_ZeroPos(C.short(card), C.short(axis), C.short(count)) })
}

func (p *Port) GetAxisEncPos(card, axis int16) (float64, model.Result) {
	var pos C.double
	rc := p.call(func() C.short { return C.go_gt_get_enc_pos(C.short(card), C.short(axis), &pos) })
	return float64(pos), rc
}

func (p *Port) GetSts(card, axis int16) (int32, model.Result) {
	var sts C.long
	rc := p.call(func() C.short { return C.go_gt_get_sts(C.short(card), C.short(axis), &sts) })
	return int32(sts), rc
}

func (p *Port) AxisOn(card, axis int16) model.Result {
	return p.call(func() C.short { return C.GT_AxisOn(C.short(card), C.short(axis)) })
}

func (p *Port) AxisOff(card, axis int16) model.Result {
	return p.call(func() C.short { return C.GT_AxisOff(C.short(card), C.short(axis)) })
}

func (p *Port) SetDoBit(card, doType, index, value int16) model.Result {
	return p.call(func() C.short {
		return C.GT_SetDoBit(C.short(card), C.short(doType), C.short(index), C.short(value))
	})
}

func (p *Port) GetDo(card, doType int16) (int32, model.Result) {
	var v C.long
	rc := p.call(func() C.short { return C.GT_GetDo(C.short(card), C.short(doType), &v) })
	return int32(v), rc
}

func (p *Port) GetDi(card, diType int16) (int32, model.Result) {
	var v C.long
	rc := p.call(func() C.short { return C.GT_GetDi(C.short(card), C.short(diType), &v) })
	return int32(v), rc
}

func (p *Port) GetAdc(card, channel int16) (float64, model.Result) {
	var v C.double
	rc := p.call(func() C.short { return C.go_gt_get_adc(C.short(card), C.short(channel), &v) })
	return float64(v), rc
}

func (p *Port) GetDac(card, channel int16) (int16, model.Result) {
	var v C.short
	rc := p.call(func() C.short { return C.go_gt_get_dac(C.short(card), C.short(channel), &v) })
	return int16(v), rc
}

func (p *Port) SetDac(card, channel int16, value int16) model.Result {
	return p.call(func() C.short { return C.go_gt_set_dac(C.short(card), C.short(channel), C.short(value)) })
}

func (p *Port) Stop(card int16, mask, option int32) model.Result {
	return p.call(func() C.short { return C.GT_Stop(C.short(card), C.long(mask), C.long(option)) })
}
