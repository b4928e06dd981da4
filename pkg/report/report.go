package report

import (
	"encoding/xml"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"

	"github.com/ostafen/sigscan/pkg/sysinfo"
)

const XmlOutputVersion = "1.0"

// Header is the opening part of a classification report.
type Header struct {
	XmlOutput string
	Creator   Creator
	Source    Source
}

// Creator describes the program that produced the report.
type Creator struct {
	Package              string  `xml:"package"`
	Version              string  `xml:"version"`
	ExecutionEnvironment ExecEnv `xml:"execution_environment"`
}

type ExecEnv struct {
	OS      string `xml:"os_sysname"`
	Release string `xml:"os_release"`
	Version string `xml:"os_version"`
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	UID     int    `xml:"uid"`
	Start   string `xml:"start_time"`
}

// Source describes what was classified and how.
type Source struct {
	Path       string `xml:"path"`
	Signatures string `xml:"signatures"`
	Count      int    `xml:"signature_count"`
	Strategy   string `xml:"strategy"`
}

// FileObject is the classification of one input.
type FileObject struct {
	XMLName  xml.Name `xml:"fileobject"`
	Filename string   `xml:"filename"`
	FileSize uint64   `xml:"filesize"`
	Label    string   `xml:"label"`
	Priority *int     `xml:"priority,omitempty"`
	Error    string   `xml:"error,omitempty"`
}

// Summary closes a report with totals over all file objects.
type Summary struct {
	XMLName  xml.Name `xml:"summary"`
	Files    int      `xml:"files"`
	Matched  int      `xml:"matched"`
	Unknown  int      `xml:"unknown"`
	Errors   int      `xml:"errors"`
	Bytes    uint64   `xml:"bytes"`
	Duration string   `xml:"duration"`
}

// GetExecEnv describes the host the report is generated on.
func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	if u, err := user.Current(); err == nil {
		if v, err := strconv.Atoi(u.Uid); err == nil {
			uid = v
		}
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}
