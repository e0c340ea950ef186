package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/simpletemp/internal/client/config"
	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/client/services"
	"github.com/dmitrijs2005/simpletemp/internal/client/sync"
	"github.com/dmitrijs2005/simpletemp/internal/common"
	"github.com/dmitrijs2005/simpletemp/internal/logging"
)

// stubAnswers replaces the prompt helpers with ones replaying texts and
// passwords in order. Running out of answers yields io.EOF.
func stubAnswers(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := []byte(passwords[0])
		passwords = passwords[1:]
		return p, nil
	}
}

func silenceREPL(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

type fakeIdentity struct {
	password    string
	registered  bool
	registerErr error
	loginErr    error
	gotPassword []byte
}

func (f *fakeIdentity) IsRegistered(context.Context) (bool, error) { return f.registered, nil }

func (f *fakeIdentity) Register(_ context.Context, password []byte) error {
	f.gotPassword = append([]byte(nil), password...)
	if f.registerErr != nil {
		return f.registerErr
	}
	if f.registered {
		return common.ErrAlreadyRegistered
	}
	f.registered = true
	f.password = string(password)
	return nil
}

func (f *fakeIdentity) Login(_ context.Context, password []byte) (bool, error) {
	f.gotPassword = append([]byte(nil), password...)
	if f.loginErr != nil {
		return false, f.loginErr
	}
	if !f.registered {
		return false, common.ErrNotRegistered
	}
	return string(password) == f.password, nil
}

type fakeProfiles struct {
	list []models.Person
}

func (f *fakeProfiles) Create() *models.Person { return &models.Person{ID: "new-id"} }

func (f *fakeProfiles) Save(_ context.Context, p *models.Person) error {
	f.list = append(f.list, *p)
	return nil
}

func (f *fakeProfiles) Get(_ context.Context, id string) (*models.Person, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			return &f.list[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeProfiles) List(context.Context) ([]models.Person, error) { return f.list, nil }

type fakeReports struct {
	inputs  []services.ReportInput
	samples []models.Sample
}

func (f *fakeReports) Record(_ context.Context, in services.ReportInput) (*models.Report, error) {
	f.inputs = append(f.inputs, in)
	temp := in.Temperature
	if in.Fahrenheit {
		temp = models.FahrenheitToCelsius(temp)
	}
	return &models.Report{Temperature: temp, Location: in.Location, Timestamp: in.Timestamp}, nil
}

func (f *fakeReports) Recent(context.Context, string) ([]models.Sample, error) {
	return f.samples, nil
}

type fakeSyncer struct {
	stats    sync.Stats
	err      error
	requests int
	runs     int
	starts   atomic.Int32
}

// Start behaves like a continuous schedule: it runs until ctx is done.
func (f *fakeSyncer) Start(ctx context.Context) error {
	f.starts.Add(1)
	<-ctx.Done()
	return nil
}

func (f *fakeSyncer) Sync(context.Context) { f.requests++ }

func (f *fakeSyncer) SyncNow(context.Context) (sync.Stats, error) {
	f.runs++
	return f.stats, f.err
}

type testApp struct {
	*App
	identity *fakeIdentity
	profiles *fakeProfiles
	reports  *fakeReports
	syncer   *fakeSyncer
	out      *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	ta := &testApp{
		identity: &fakeIdentity{},
		profiles: &fakeProfiles{},
		reports:  &fakeReports{},
		syncer:   &fakeSyncer{},
		out:      &bytes.Buffer{},
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	ta.App = &App{
		config:   cfg,
		log:      logging.Nop(),
		identity: ta.identity,
		profiles: ta.profiles,
		reports:  ta.reports,
		syncer:   ta.syncer,
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      ta.out,
	}
	return ta
}
