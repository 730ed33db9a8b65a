package resolver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/samber/lo"
)

// Streamlink resolves URLs by running the streamlink executable and reading the
// selected stream from its standard output.
type Streamlink struct {
	// Path of the executable.
	Path string
	// Args are passed before the URL, e.g. plugin options.
	Args []string
}

// processHandle owns a running streamlink process. Close kills it, which also
// unblocks a read waiting on its output.
type processHandle struct {
	cmd    *exec.Cmd
	out    io.ReadCloser
	reader *bufio.Reader
	stderr *bytes.Buffer

	once sync.Once
	err  error
}

func (p *processHandle) Read(b []byte) (int, error) {
	return p.reader.Read(b)
}

func (p *processHandle) Close() error {
	p.once.Do(func() {
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		_ = p.out.Close()
		if err := p.cmd.Wait(); err != nil && !killed(err) {
			p.err = err
		}
	})
	return p.err
}

func killed(err error) bool {
	var exit *exec.ExitError
	return errors.As(err, &exit) && !exit.Exited()
}

// Resolve starts streamlink for rawURL at quality and waits until the first byte of
// the stream arrives. If ctx ends first the process is killed. Once resolved, the
// stream outlives ctx.
func (s *Streamlink) Resolve(ctx context.Context, rawURL, quality string) (stream.Handle, error) {
	args := append(append([]string{}, s.Args...), "--stdout", "--loglevel", "error", rawURL, quality)
	cmd := exec.Command(s.path(), args...)

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, stream.NewResolutionError(rawURL, quality, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, stream.NewResolutionError(rawURL, quality, err)
	}

	handle := &processHandle{
		cmd:    cmd,
		out:    out,
		reader: bufio.NewReaderSize(out, 64*1024),
		stderr: stderr,
	}

	peeked := make(chan error, 1)
	go func() {
		_, err := handle.reader.Peek(1)
		peeked <- err
	}()

	select {
	case err = <-peeked:
	case <-ctx.Done():
		_ = handle.Close()
		<-peeked
		return nil, stream.NewResolutionError(rawURL, quality, ctx.Err())
	}

	if err != nil {
		_ = handle.Close()
		if errors.Is(err, io.EOF) {
			err = errEmptyResponse
		}
		if reason := lastLine(stderr.String()); reason != "" {
			err = fmt.Errorf("%w: %s", err, reason)
		}
		return nil, stream.NewResolutionError(rawURL, quality, err)
	}

	log.Infof("resolver: streamlink pid %d serving %s (%s)", cmd.Process.Pid, rawURL, quality)
	return handle, nil
}

type streamlinkJSON struct {
	Streams map[string]json.RawMessage `json:"streams"`
	Error   string                     `json:"error"`
}

// Qualities asks streamlink which renditions rawURL offers.
func (s *Streamlink) Qualities(ctx context.Context, rawURL string) ([]string, error) {
	args := append(append([]string{}, s.Args...), "--json", rawURL)
	cmd := exec.CommandContext(ctx, s.path(), args...)

	// streamlink exits non-zero on errors but still prints the JSON document
	out, runErr := cmd.Output()

	qualities, err := parseQualities(out)
	if err != nil {
		if runErr != nil {
			err = fmt.Errorf("%w (%v)", err, runErr)
		}
		return nil, stream.NewResolutionError(rawURL, "", err)
	}
	return qualities, nil
}

func (s *Streamlink) path() string {
	if s.Path == "" {
		return "streamlink"
	}
	return s.Path
}

func parseQualities(data []byte) ([]string, error) {
	var doc streamlinkJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode streamlink output: %w", err)
	}
	if doc.Error != "" {
		return nil, errors.New(doc.Error)
	}
	if len(doc.Streams) == 0 {
		return nil, errNoStreams
	}

	qualities := lo.Keys(doc.Streams)
	sortQualities(qualities)
	return qualities, nil
}

// sortQualities orders labels from best to worst: "best" first, "worst" last and
// resolutions such as "1080p60" by height and then frame rate.
func sortQualities(qualities []string) {
	rank := func(q string) (int, int, int) {
		switch q {
		case stream.QualityBest:
			return 0, 0, 0
		case "worst":
			return 3, 0, 0
		}

		height, rest, ok := strings.Cut(q, "p")
		h, err := strconv.Atoi(height)
		if !ok || err != nil {
			return 2, 0, 0
		}
		fps, _ := strconv.Atoi(rest)
		return 1, h, fps
	}

	sort.SliceStable(qualities, func(i, j int) bool {
		ci, hi, fi := rank(qualities[i])
		cj, hj, fj := rank(qualities[j])
		if ci != cj {
			return ci < cj
		}
		if hi != hj {
			return hi > hj
		}
		if fi != fj {
			return fi > fj
		}
		return qualities[i] < qualities[j]
	})
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
