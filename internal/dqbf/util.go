package dqbf

import (
	"io"

	"github.com/sirupsen/logrus"

	ginioracle "github.com/fslivovsky/pedantic/internal/sat/gini"
	"github.com/fslivovsky/pedantic/internal/sat"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func defaultOracles() (counterexample, expansion sat.Oracle) {
	return ginioracle.New(), ginioracle.New()
}
