package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danmuck/rtectl/internal/frameset"
)

var ErrScriptStep = errors.New("player: invalid script step")

// Script is a recorded sequence of content calls and learner navigation.
type Script struct {
	Name    string        `yaml:"name"`
	Timeout time.Duration `yaml:"timeout"`
	Steps   []Step        `yaml:"steps"`
}

// Step is exactly one of Call, Nav or Wait.
type Step struct {
	Call     string  `yaml:"call,omitempty"`
	Args     []any   `yaml:"args,omitempty"`
	Expect   *string `yaml:"expect,omitempty"`
	Nav      string  `yaml:"nav,omitempty"`
	Activity string  `yaml:"activity,omitempty"`
	Wait     string  `yaml:"wait,omitempty"`
}

type StepResult struct {
	Index    int    `json:"index" yaml:"index"`
	Step     string `json:"step" yaml:"step"`
	Result   string `json:"result,omitempty" yaml:"result,omitempty"`
	Activity string `json:"activity" yaml:"activity"`
	Failed   bool   `json:"failed,omitempty" yaml:"failed,omitempty"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("script load failed (%s): %w", path, err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("script parse failed: %w", err)
	}
	if s.Timeout <= 0 {
		s.Timeout = 10 * time.Second
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return Script{}, fmt.Errorf("step[%d]: %w", i, err)
		}
	}
	return s, nil
}

func (st Step) validate() error {
	set := 0
	for _, v := range []string{st.Call, st.Nav, st.Wait} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: exactly one of call, nav, wait required", ErrScriptStep)
	}
	switch st.Nav {
	case "", "next", "previous", "submit", "save", "close":
	case "choice", "toc":
		if st.Activity == "" {
			return fmt.Errorf("%w: %s needs activity", ErrScriptStep, st.Nav)
		}
	default:
		return fmt.Errorf("%w: unknown nav %q", ErrScriptStep, st.Nav)
	}
	switch st.Wait {
	case "", "ready", "closed":
	default:
		return fmt.Errorf("%w: unknown wait %q", ErrScriptStep, st.Wait)
	}
	return nil
}

func (st Step) String() string {
	switch {
	case st.Call != "":
		args := make([]string, len(st.Args))
		for i, a := range st.Args {
			args[i] = fmt.Sprintf("%v", a)
		}
		return st.Call + "(" + strings.Join(args, ", ") + ")"
	case st.Nav != "":
		if st.Activity != "" {
			return "nav " + st.Nav + " " + st.Activity
		}
		return "nav " + st.Nav
	default:
		return "wait " + st.Wait
	}
}

// Replay runs script against the session. It stops at the first step that errors; a
// call whose result differs from Expect is marked failed and the run continues.
func (s *Session) Replay(ctx context.Context, script Script) ([]StepResult, error) {
	results := make([]StepResult, 0, len(script.Steps))
	for i, st := range script.Steps {
		stepCtx, cancel := context.WithTimeout(ctx, script.Timeout)
		res, err := s.runStep(stepCtx, st)
		cancel()
		res.Index = i
		res.Step = st.String()
		if activity, _, aerr := s.Activity(ctx); aerr == nil {
			res.Activity = activity
		}
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("step[%d] %s: %w", i, res.Step, err)
		}
	}
	return results, nil
}

func (s *Session) runStep(ctx context.Context, st Step) (StepResult, error) {
	var res StepResult
	switch {
	case st.Call != "":
		out, err := s.Invoke(ctx, st.Call, st.Args...)
		if err != nil {
			return res, err
		}
		res.Result = out
		if st.Expect != nil && *st.Expect != out {
			res.Failed = true
			res.Detail = fmt.Sprintf("expected %q", *st.Expect)
		}
		return res, nil
	case st.Nav != "":
		var accepted bool
		err := s.Do(ctx, func(m *frameset.Manager) {
			accepted = navigate(m, st)
		})
		if err != nil {
			return res, err
		}
		res.Result = fmt.Sprintf("%t", accepted)
		if !accepted {
			res.Failed = true
			res.Detail = "navigation not accepted"
		}
		return res, nil
	case st.Wait == "closed":
		select {
		case <-s.Done():
			return res, nil
		case <-ctx.Done():
			return res, ctx.Err()
		}
	default:
		return res, s.WaitReady(ctx)
	}
}

func navigate(m *frameset.Manager, st Step) bool {
	switch st.Nav {
	case "next":
		return m.Next()
	case "previous":
		return m.Previous()
	case "choice":
		return m.Choice(st.Activity)
	case "toc":
		return m.TOCChoice(st.Activity)
	case "submit":
		return m.Submit()
	case "save":
		return m.Save()
	case "close":
		m.Close()
		return true
	}
	return false
}
