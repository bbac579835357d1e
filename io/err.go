package io

import (
	"errors"

	"github.com/ezrec/msp430/translate"
)

var f = translate.From

var (
	ErrMemorySize = errors.New(f("memory too small for peripherals"))
	ErrPixel      = errors.New(f("pixel out of range"))
	ErrIndex      = errors.New(f("index out of range"))
)
