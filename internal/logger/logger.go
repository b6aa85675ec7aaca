package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	cInf  = color.New(color.FgCyan, color.Bold).SprintFunc()
	cWarn = color.New(color.FgYellow, color.Bold).SprintFunc()
	cErr  = color.New(color.FgRed, color.Bold).SprintFunc()
	cFatl = color.New(color.BgRed, color.FgWhite, color.Bold).SprintFunc()
	cTime = color.New(color.FgHiBlack).SprintFunc()
)

func timeStamp() string {
	return cTime(time.Now().Format("2006-01-02 15:04:05"))
}

func Info(format string, v ...interface{}) {
	fmt.Printf("%s %s %s\n", timeStamp(), cInf("[INFO]"), fmt.Sprintf(format, v...))
}

func Warn(format string, v ...interface{}) {
	fmt.Printf("%s %s %s\n", timeStamp(), cWarn("[WARN]"), fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s %s\n", timeStamp(), cErr("[ERR]"), fmt.Sprintf(format, v...))
}

func Fatal(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s %s\n", timeStamp(), cFatl("[FATAL]"), fmt.Sprintf(format, v...))
	os.Exit(1)
}
