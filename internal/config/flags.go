package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the command-line arguments (without the program name).
//
// Flags:
//
//	-u API base URL
//	-t request timeout (e.g. "15s")
//	-s template fan-out strategy: best-effort | fail-fast
//	-mock start the embedded mock backend
//	-d session store DSN
//	-log console log file
//	-c/-config json file path with configs
//	-a mock backend address in format [host]:[port]
//	-mock-dsn mock backend database DSN
//	-otp mock backend OTP code
//	-upload-dir mock backend upload directory
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("exam-admin", flag.ContinueOnError)

	var mockAddress NetAddress
	var baseURL, strategy, sessionDSN, logFile, jsonConfigPath string
	var mockDSN, otpCode, uploadDir string
	var requestTimeout time.Duration
	var mockData bool

	fs.StringVar(&baseURL, "u", "", "API base URL")
	fs.DurationVar(&requestTimeout, "t", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&strategy, "s", "", "Template fan-out strategy: best-effort | fail-fast")
	fs.BoolVar(&mockData, "mock", false, "Start the embedded mock backend")
	fs.StringVar(&sessionDSN, "d", "", "Session store DSN")
	fs.StringVar(&logFile, "log", "", "Console log file")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.Var(&mockAddress, "a", "Mock backend address host:port")
	fs.StringVar(&mockDSN, "mock-dsn", "", "Mock backend database DSN")
	fs.StringVar(&otpCode, "otp", "", "Mock backend OTP code")
	fs.StringVar(&uploadDir, "upload-dir", "", "Mock backend upload directory")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			MockData: mockData,
			LogFile:  logFile,
		},
		Storage: Storage{
			DB: DB{DSN: sessionDSN},
		},
		Adapter: Adapter{
			BaseURL:           baseURL,
			RequestTimeout:    requestTimeout,
			TemplatesStrategy: FanOutStrategy(strategy),
		},
		Mock: Mock{
			Address:   mockAddress.String(),
			DSN:       mockDSN,
			OTPCode:   otpCode,
			UploadDir: uploadDir,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && !strings.EqualFold(host, "localhost") && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
