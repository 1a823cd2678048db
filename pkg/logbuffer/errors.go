package logbuffer

import "errors"

// ErrInvalidTermLength is returned when a requested term length is not a
// positive power of two.
var ErrInvalidTermLength = errors.New("logbuffer: term length must be a positive power of two")

// ErrFileTooSmall is returned when an existing log file is shorter than its
// declared metadata block plus three term buffers, and also when its
// metadata block does not start with the expected magic number.
var ErrFileTooSmall = errors.New("logbuffer: file too small for declared term length")

// ErrFrameTooLarge is returned by Appender when a message would not fit
// within a single term buffer.
var ErrFrameTooLarge = errors.New("logbuffer: frame exceeds term length")

// ErrClosed is returned by operations on a log that has already been closed.
var ErrClosed = errors.New("logbuffer: log is closed")
