package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// DefaultPollInterval is how often Follow checks for new lines.
const DefaultPollInterval = 250 * time.Millisecond

const maxLineBytes = 1024 * 1024

// Filter selects lines by case-insensitive substring. An empty filter
// matches everything.
type Filter string

// Match reports whether line passes the filter.
func (f Filter) Match(line string) bool {
	needle := strings.TrimSpace(string(f))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(line), strings.ToLower(needle))
}

// Last returns up to limit trailing lines that pass filter, plus the offset
// of the end of the file. A missing file yields no lines and offset 0.
func Last(path string, limit int, filter Filter) ([]string, int64, error) {
	file, err := openLog(path)
	if err != nil || file == nil {
		return nil, 0, err
	}
	defer file.Close()

	if limit <= 0 {
		offset, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("seek log file: %w", err)
		}
		return nil, offset, nil
	}

	ring := make([]string, limit)
	count, idx := 0, 0
	offset, err := scanLines(file, func(line string) {
		if !filter.Match(line) {
			return
		}
		ring[idx] = line
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	})
	if err != nil {
		return nil, 0, err
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, offset, nil
}

// ReadFrom returns the complete lines written after offset that pass
// filter, and the offset to resume from. A partial trailing line is left
// for the next call.
func ReadFrom(path string, offset int64, filter Filter) ([]string, int64, error) {
	file, err := openLog(path)
	if err != nil || file == nil {
		return nil, 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReader(file)
	var lines []string
	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, 0, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(raw))
		line := strings.TrimRight(raw, "\r\n")
		if filter.Match(line) {
			lines = append(lines, line)
		}
	}
	return lines, offset, nil
}

// Follow polls path every interval and passes each new matching line to
// emit until ctx is cancelled. It returns nil on cancellation.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, filter Filter, emit func(string) error) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		lines, next, err := ReadFrom(path, offset, filter)
		if err != nil {
			return err
		}
		offset = next
		for _, line := range lines {
			if err := emit(line); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func openLog(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

func scanLines(file *os.File, fn func(string)) (int64, error) {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read log file: %w", err)
	}
	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("determine log offset: %w", err)
	}
	return offset, nil
}
