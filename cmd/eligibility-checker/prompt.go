package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/form"
	"wellness-eligibility/internal/models"
	"wellness-eligibility/internal/presenter"
	"wellness-eligibility/internal/submission"
)

var (
	errBack     = errors.New("back")
	errReset    = errors.New("reset")
	errQuit     = errors.New("quit")
	errFinished = errors.New("finished")
)

type kind int

const (
	kindText kind = iota
	kindCount
	kindOptionalCount
	kindChoice
	kindScale
	kindTags
	kindYesNo
	kindOffices
)

type question struct {
	key     string
	label   string
	kind    kind
	options []string
}

func questionsFor(step int) []question {
	switch step {
	case models.StepCompany:
		return []question{
			{key: "companyName", label: "Company name", kind: kindText},
			{key: "businessType", label: "Business type", kind: kindChoice, options: stringsOf(models.BusinessTypes)},
			{key: "industryCategory", label: "Industry", kind: kindChoice, options: stringsOf(models.IndustryCategories)},
		}
	case models.StepLocations:
		return []question{
			{key: "hqPostalCode", label: "Head office postcode", kind: kindText},
			{key: "hqCity", label: "Head office city", kind: kindText},
			{key: "hqState", label: "Head office state", kind: kindText},
			{key: "hqEmployees", label: "Employees at head office", kind: kindOptionalCount},
			{key: "offices", label: "Other office locations", kind: kindOffices},
		}
	case models.StepWorkforce:
		return []question{
			{key: "totalEmployees", label: "Total employees", kind: kindCount},
			{key: "workforceType", label: "Workforce type", kind: kindChoice, options: stringsOf(models.WorkforceTypes)},
			{key: "communicationStrength", label: "How strong is internal communication?", kind: kindScale},
		}
	case models.StepBenefits:
		return []question{
			{key: "wellnessGoals", label: "Wellness goals", kind: kindTags, options: models.WellnessGoalOptions},
			{key: "existingBenefits", label: "Do you currently offer wellness benefits?", kind: kindYesNo},
			{key: "currentBenefits", label: "Current benefits", kind: kindTags, options: models.CurrentBenefitOptions},
		}
	case models.StepContact:
		return []question{
			{key: "firstName", label: "First name", kind: kindText},
			{key: "lastName", label: "Last name", kind: kindText},
			{key: "jobTitle", label: "Job title", kind: kindText},
			{key: "workEmail", label: "Work email", kind: kindText},
			{key: "phoneNumber", label: "Phone number", kind: kindText},
		}
	}
	return nil
}

type prompter struct {
	lines  <-chan string
	done   chan struct{} // closed when Run returns
	reader chan struct{} // closed when the input goroutine exits
	out    io.Writer
	state  *form.State
	coord  *submission.Coordinator
	skin   presenter.Skin
	errs   *apperrors.ErrorHandler
	logger logger.Logger
}

func newPrompter(in io.Reader, out io.Writer, state *form.State, coord *submission.Coordinator, skin presenter.Skin, log logger.Logger) *prompter {
	lines := make(chan string)
	done := make(chan struct{})
	reader := make(chan struct{})
	go func() {
		defer close(reader)
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	log = logger.ForComponent(log, "prompt")
	return &prompter{
		lines:  lines,
		done:   done,
		reader: reader,
		out:    out,
		state:  state,
		coord:  coord,
		skin:   skin,
		errs:   apperrors.NewErrorHandler(log),
		logger: log,
	}
}

// Run drives one device session until the user quits, finishes or input ends.
func (p *prompter) Run(ctx context.Context) error {
	defer close(p.done)
	p.printf("%s\nCommands: :back  :reset  :quit\n", p.skin.Title)

	if p.state.Mount(ctx) {
		if err := p.offerRestore(ctx); err != nil {
			return p.stop(err)
		}
	}

	for {
		err := p.runStep(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errBack):
			_ = p.state.Retreat(ctx)
		case errors.Is(err, errReset):
			_ = p.state.Reset(ctx)
			p.printf("Starting over.\n")
		default:
			return p.stop(err)
		}
	}
}

func (p *prompter) stop(err error) error {
	switch {
	case errors.Is(err, errFinished):
		return nil
	case errors.Is(err, errQuit), errors.Is(err, io.EOF):
		p.printf("\nYour progress has been saved on this device.\n")
		return nil
	}
	return err
}

func (p *prompter) offerRestore(ctx context.Context) error {
	saved := p.state.PendingSession()
	name := saved.Answers.CompanyName
	if name == "" {
		name = "your company"
	}
	p.printf("\nWe found saved progress for %s (step %d: %s).\n", name, saved.Step, p.skin.StepLabel(saved.Step))

	yes, err := p.confirm(ctx, "Continue where you left off?", true)
	if err != nil {
		return err
	}
	if yes {
		return p.state.AcceptRestore(ctx)
	}
	return p.state.DeclineRestore(ctx)
}

func (p *prompter) runStep(ctx context.Context) error {
	step := p.state.Step()
	p.printf("\n%s\n", p.skin.Progress(step))

	for _, q := range questionsFor(step) {
		if err := p.ask(ctx, q); err != nil {
			return err
		}
	}

	if err := p.state.Advance(ctx); err != nil {
		p.notice("advance", err)
		if apperrors.HasCode(err, apperrors.ErrCodeStepIncomplete) {
			p.fieldProblems(step)
		}
		return nil
	}
	if step < models.MaxStep {
		return nil
	}
	return p.submit(ctx)
}

func (p *prompter) submit(ctx context.Context) error {
	p.printf("\nChecking your eligibility...\n")
	outcome, err := p.coord.Submit(ctx, p.state)
	if err != nil {
		p.notice("submit", err)
		return nil
	}

	p.printf("\n")
	if err := presenter.Render(p.out, presenter.Build(outcome), p.skin); err != nil {
		return err
	}

	again, err := p.confirm(ctx, "Start another check?", false)
	if err != nil {
		return err
	}
	if !again {
		return errFinished
	}
	return nil
}

func (p *prompter) ask(ctx context.Context, q question) error {
	if q.kind == kindOffices {
		return p.askOffices(ctx, q)
	}

	for {
		p.printf("%s%s", q.label, p.hint(q))
		if len(q.options) > 0 {
			p.printf("\n%s", numbered(q.options))
		}
		line, err := p.readLine(ctx, "> ")
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}

		value, err := parseAnswer(q, line)
		if err != nil {
			p.printf("  %v\n", err)
			continue
		}
		if err := p.state.Update(ctx, map[string]interface{}{q.key: value}); err != nil {
			p.notice("update", err)
			continue
		}
		return nil
	}
}

func (p *prompter) askOffices(ctx context.Context, q question) error {
	current := p.state.Answers().Offices
	for {
		p.printf("%s (currently %d, blank to keep)\n", q.label, len(current))
		line, err := p.readLine(ctx, "How many? > ")
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 {
			p.printf("  enter a whole number, 0 or more\n")
			continue
		}

		offices := make([]models.Office, 0, n)
		for i := 0; i < n; i++ {
			var o models.Office
			for _, f := range []struct {
				label string
				dst   *string
			}{{"postcode", &o.Postal}, {"city", &o.City}, {"state", &o.State}} {
				if *f.dst, err = p.readLine(ctx, fmt.Sprintf("  Office %d %s > ", i+1, f.label)); err != nil {
					return err
				}
			}
			for {
				raw, err := p.readLine(ctx, fmt.Sprintf("  Office %d employees > ", i+1))
				if err != nil {
					return err
				}
				if raw == "" {
					break
				}
				count, err := strconv.Atoi(raw)
				if err != nil {
					p.printf("  enter a whole number\n")
					continue
				}
				o.Employees = models.IntPtr(count)
				break
			}
			offices = append(offices, o)
		}

		if err := p.state.Update(ctx, map[string]interface{}{q.key: offices}); err != nil {
			p.notice("update", err)
			continue
		}
		return nil
	}
}

func (p *prompter) confirm(ctx context.Context, question string, def bool) (bool, error) {
	choices := "[y/N]"
	if def {
		choices = "[Y/n]"
	}
	for {
		line, err := p.readLine(ctx, fmt.Sprintf("%s %s ", question, choices))
		if errors.Is(err, errBack) || errors.Is(err, errReset) {
			continue
		}
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// readLine returns the trimmed next line. Commands come back as their sentinel errors.
func (p *prompter) readLine(ctx context.Context, prompt string) (string, error) {
	p.printf("%s", prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		line = strings.TrimSpace(line)
		switch line {
		case ":back":
			return "", errBack
		case ":reset":
			return "", errReset
		case ":quit":
			return "", errQuit
		}
		return line, nil
	}
}

func (p *prompter) hint(q question) string {
	current := currentValue(p.state.Answers(), q.key)
	if current == "" {
		return ":"
	}
	return fmt.Sprintf(" [%s]:", current)
}

// fieldProblems lists the failing rules for the questions on step.
func (p *prompter) fieldProblems(step int) {
	res := form.ValidateSubmission(p.state.Answers())
	for _, q := range questionsFor(step) {
		for _, e := range res.GetErrorsForField(q.key) {
			p.printf("    - %s: %s\n", q.label, e.Message)
		}
	}
}

func (p *prompter) notice(op string, err error) {
	n := p.errs.Handle(op, err)
	p.printf("  ! %s\n", n.Text)
	for _, item := range n.Items {
		p.printf("    - %s\n", item)
	}
}

func (p *prompter) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// parseAnswer turns a typed line into the patch value for q. "-" clears optional fields.
func parseAnswer(q question, line string) (interface{}, error) {
	switch q.kind {
	case kindText:
		if line == "-" {
			return nil, nil
		}
		return line, nil

	case kindCount, kindOptionalCount:
		if line == "-" && q.kind == kindOptionalCount {
			return nil, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("enter a whole number")
		}
		return n, nil

	case kindChoice:
		return pick(q.options, line)

	case kindScale:
		if line == "-" {
			return nil, nil
		}
		for i := 0; i <= models.MaxCommunication; i++ {
			if strings.EqualFold(line, models.CommunicationLabel(i)) || line == strconv.Itoa(i) {
				return i, nil
			}
		}
		return nil, fmt.Errorf("enter 0-%d or a label", models.MaxCommunication)

	case kindTags:
		if line == "-" {
			return []string{}, nil
		}
		var tags []string
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			tag, err := pick(q.options, part)
			if err != nil {
				tag = part
			}
			tags = append(tags, tag)
		}
		return tags, nil

	case kindYesNo:
		switch strings.ToLower(line) {
		case "y", "yes":
			return string(models.BenefitsYes), nil
		case "n", "no":
			return string(models.BenefitsNo), nil
		}
		return nil, fmt.Errorf("answer yes or no")
	}
	return nil, fmt.Errorf("unsupported question")
}

// pick accepts a 1-based option number or an option value.
func pick(options []string, line string) (string, error) {
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("choose 1-%d", len(options))
		}
		return options[n-1], nil
	}
	for _, o := range options {
		if strings.EqualFold(o, line) {
			return o, nil
		}
	}
	return "", fmt.Errorf("choose one of the listed options")
}

func numbered(options []string) string {
	var b strings.Builder
	for i, o := range options {
		fmt.Fprintf(&b, "  %2d) %s\n", i+1, o)
	}
	return b.String()
}

func currentValue(a models.Answers, key string) string {
	data, err := json.Marshal(a)
	if err != nil {
		return ""
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return ""
	}

	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if key == "communicationStrength" {
			return models.CommunicationLabel(int(v))
		}
		return strconv.Itoa(int(v))
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
