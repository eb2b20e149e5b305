package syscallmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// System calls are declared like this:
//
//	asmlinkage long sys_io_getevents(aio_context_t ctx_id,
//					long min_nr,
//					long nr,
//					struct io_event __user *events,
//					struct timespec __user *timeout);
var declarationStartRegex = regexp.MustCompile(`^asmlinkage\s+(.*?)\s+sys_(.*?)\(`)

// Enough for the current lot of em.
const bufSize = 500

type scanState int

const (
	// Looking for the next asmlinkage line.
	stateIdle scanState = iota
	// Buffering parameter text until the next ',' or ')'.
	stateInDeclaration
)

type SyscallParser struct {
	logger hclog.Logger
}

type SyscallParserOpt func(*SyscallParser)

func WithLogger(logger hclog.Logger) SyscallParserOpt {
	return func(sp *SyscallParser) {
		sp.logger = logger
	}
}

func NewSyscallParser(opts ...SyscallParserOpt) *SyscallParser {
	sp := &SyscallParser{
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// Parse reads syscalls.h style declarations from r and returns them in source
// order. Preprocessor conditionals are not evaluated, so declarations that
// are compiled out for some configurations are returned as well.
//
// Any malformed parameter or unterminated declaration fails the whole parse.
func (sp *SyscallParser) Parse(r io.Reader) ([]SystemCall, error) {
	s := &scanner{
		logger: sp.logger,
		calls:  make([]SystemCall, 0, bufSize),
	}

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			s.lineNo++
			if perr := s.scanLine(line); perr != nil {
				return nil, perr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read syscall header: %w", err)
		}
	}

	if s.state == stateInDeclaration {
		return nil, &UnterminatedError{
			Call:    s.current.Name,
			Line:    s.startLine,
			Pending: strings.TrimSpace(s.buf.String()),
		}
	}

	sp.logger.Debug("parsed syscall header", "syscalls", len(s.calls), "lines", s.lineNo)
	return s.calls, nil
}

// Parse is shorthand for NewSyscallParser().Parse(r).
func Parse(r io.Reader) ([]SystemCall, error) {
	return NewSyscallParser().Parse(r)
}

type scanner struct {
	logger hclog.Logger

	state     scanState
	current   SystemCall
	buf       strings.Builder
	lineNo    int
	startLine int

	calls []SystemCall
}

func (s *scanner) scanLine(line string) error {
	text := line
	if s.state == stateIdle {
		m := declarationStartRegex.FindStringSubmatch(line)
		if m == nil {
			return nil
		}

		s.state = stateInDeclaration
		s.startLine = s.lineNo
		s.current = SystemCall{
			Name:       strings.TrimSpace(m[2]),
			ReturnType: strings.TrimSpace(m[1]),
		}
		s.buf.Reset()
		text = line[len(m[0]):]
	}

	for _, c := range text {
		switch c {
		case '\n':
		case '\t':
			s.buf.WriteByte(' ')
		case ',':
			if err := s.endParameter(); err != nil {
				return err
			}
		case ')':
			if err := s.endParameter(); err != nil {
				return err
			}
			s.endDeclaration()
			// Whatever follows the ')' on this line (usually just ';') is not
			// looked at.
			return nil
		default:
			s.buf.WriteRune(c)
		}
	}
	return nil
}

func (s *scanner) endParameter() error {
	text := s.buf.String()
	s.buf.Reset()

	param, ok, err := parseParameter(s.logger, text)
	if err != nil {
		var perr *ParameterError
		if errors.As(err, &perr) {
			perr.Call = s.current.Name
			perr.Line = s.lineNo
		}
		return err
	}
	if !ok {
		return nil
	}

	s.logger.Trace("parsed parameter", "syscall", s.current.Name, "type", param.Type, "name", param.Name)
	s.current.Params = append(s.current.Params, param)
	return nil
}

func (s *scanner) endDeclaration() {
	s.logger.Debug("parsed syscall", "name", s.current.Name, "line", s.startLine, "params", len(s.current.Params))
	s.calls = append(s.calls, s.current)
	s.current = SystemCall{}
	s.state = stateIdle
}
