package main

import (
	"github.com/sirupsen/logrus"

	"hrrecords/internal/app/server"
)

func main() {
	if err := server.Run(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
