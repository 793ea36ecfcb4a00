package ipclog

import "time"

// Clock supplies wall-clock readings to the rate limiter and formatter.
type Clock interface {
	NowMillis() int64
	NowMicros() int64
}

// SystemClock reads the host wall clock. It is not monotonic: a clock stepped
// backwards only lengthens the current rate-limit window.
type SystemClock struct{}

func (SystemClock) NowMicros() int64 {
	return time.Now().UnixMicro()
}

func (SystemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}
