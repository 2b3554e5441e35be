package service

import "os"

var osExit = os.Exit
