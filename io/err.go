package io

import (
	"errors"

	"github.com/evrirus/mireaconfig3/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageRead  = errors.New(f("image read"))
	ErrImageWrite = errors.New(f("image write"))
)
