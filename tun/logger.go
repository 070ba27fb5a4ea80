package tun

import (
	"github.com/sirupsen/logrus"
)

// Logger defines log methods used by this package.
type Logger interface {
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Errorf(format string, a ...interface{})
}

var logger Logger = logrus.StandardLogger()

// SetLogger updates the logger tun uses. If l is nil, we'll fall back
// to the logrus standard logger.
func SetLogger(l Logger) {
	if l == nil {
		logger = logrus.StandardLogger()
	} else {
		logger = l
	}
}
