package integration

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server/middleware"
	gormstore "github.com/kimyoungq/webboard/pkg/server/store/gorm"
)

// StepsContext carries per-scenario browser state: a cookie jar and
// the last response seen.
type StepsContext struct {
	tc         *TestContext
	client     *http.Client
	lastStatus int
	lastBody   string
	lastHeader http.Header
}

func NewStepsContext(tc *TestContext) *StepsContext {
	jar, _ := cookiejar.New(nil)
	return &StepsContext{
		tc: tc,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^there is an account "([^"]*)" with password "([^"]*)"$`, s.thereIsAnAccount)
	sc.Step(`^there is an admin account "([^"]*)" with password "([^"]*)"$`, s.thereIsAnAdminAccount)
	sc.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, s.iAmLoggedInAs)
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogIn)
	sc.Step(`^I log out$`, s.iLogOut)
	sc.Step(`^I create a post titled "([^"]*)" with text "([^"]*)"$`, s.iCreateAPost)
	sc.Step(`^I modify the post titled "([^"]*)" to "([^"]*)" with text "([^"]*)"$`, s.iModifyThePost)
	sc.Step(`^I delete the post titled "([^"]*)"$`, s.iDeleteThePost)
	sc.Step(`^I open the post titled "([^"]*)"$`, s.iOpenThePost)
	sc.Step(`^I visit "([^"]*)"$`, s.iVisit)
	sc.Step(`^I submit the post form without an anti-forgery token$`, s.iSubmitWithoutToken)
	sc.Step(`^the response status should be (\d+)$`, s.responseStatusShouldBe)
	sc.Step(`^I should be redirected to "([^"]*)"$`, s.iShouldBeRedirectedTo)
	sc.Step(`^I should see "([^"]*)"$`, s.iShouldSee)
	sc.Step(`^the post titled "([^"]*)" should exist$`, s.postShouldExist)
	sc.Step(`^the post titled "([^"]*)" should not exist$`, s.postShouldNotExist)
}

func (s *StepsContext) record(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.lastStatus = resp.StatusCode
	s.lastBody = string(body)
	s.lastHeader = resp.Header
	return nil
}

func (s *StepsContext) get(path string) error {
	resp, err := s.client.Get(s.tc.ServerURL + path)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) postFormValues(path string, form url.Values) error {
	resp, err := s.client.PostForm(s.tc.ServerURL+path, form)
	if err != nil {
		return err
	}
	return s.record(resp)
}

// csrfToken returns the value of the anti-forgery cookie, fetching the
// front page first if the jar doesn't hold one yet.
func (s *StepsContext) csrfToken() (string, error) {
	base, _ := url.Parse(s.tc.ServerURL)
	for _, cookie := range s.client.Jar.Cookies(base) {
		if cookie.Name == middleware.CSRFCookieName {
			return cookie.Value, nil
		}
	}

	if err := s.get("/"); err != nil {
		return "", err
	}
	for _, cookie := range s.client.Jar.Cookies(base) {
		if cookie.Name == middleware.CSRFCookieName {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("no anti-forgery cookie issued")
}

func (s *StepsContext) createAccount(name, password string, role model.Role) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	accounts := gormstore.NewAccountsStore(s.tc.DB)
	if accounts.ExistsByName(name) {
		return nil
	}
	_, err = accounts.CreateAccount(name, string(hash), role)
	return err
}

func (s *StepsContext) thereIsAnAccount(name, password string) error {
	return s.createAccount(name, password, model.RoleUser)
}

func (s *StepsContext) thereIsAnAdminAccount(name, password string) error {
	return s.createAccount(name, password, model.RoleAdmin)
}

func (s *StepsContext) iLogIn(name, password string) error {
	token, err := s.csrfToken()
	if err != nil {
		return err
	}
	return s.postFormValues("/login", url.Values{
		"name":     {name},
		"password": {password},
		"_csrf":    {token},
	})
}

func (s *StepsContext) iAmLoggedInAs(name, password string) error {
	if err := s.iLogIn(name, password); err != nil {
		return err
	}
	if s.lastStatus != http.StatusSeeOther {
		return fmt.Errorf("login failed with status %d", s.lastStatus)
	}
	return nil
}

func (s *StepsContext) iLogOut() error {
	token, err := s.csrfToken()
	if err != nil {
		return err
	}
	return s.postFormValues("/logout", url.Values{"_csrf": {token}})
}

func (s *StepsContext) iCreateAPost(subject, text string) error {
	token, err := s.csrfToken()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("_csrf", token)
	_ = writer.WriteField("subject", subject)
	_ = writer.WriteField("text", text)
	if err := writer.Close(); err != nil {
		return err
	}

	resp, err := s.client.Post(
		s.tc.ServerURL+"/post/write",
		writer.FormDataContentType(),
		&buf,
	)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) findPostID(subject string) (int64, error) {
	var content model.Content
	if err := s.tc.DB.Where("subject = ?", subject).First(&content).Error; err != nil {
		return 0, fmt.Errorf("post %q not found: %w", subject, err)
	}
	return content.ID, nil
}

func (s *StepsContext) iModifyThePost(subject, newSubject, newText string) error {
	id, err := s.findPostID(subject)
	if err != nil {
		return err
	}
	token, err := s.csrfToken()
	if err != nil {
		return err
	}
	return s.postFormValues("/post/modify", url.Values{
		"content_id": {fmt.Sprintf("%d", id)},
		"subject":    {newSubject},
		"text":       {newText},
		"_csrf":      {token},
	})
}

func (s *StepsContext) iDeleteThePost(subject string) error {
	id, err := s.findPostID(subject)
	if err != nil {
		return err
	}
	return s.get(fmt.Sprintf("/post/delete?content_id=%d", id))
}

func (s *StepsContext) iOpenThePost(subject string) error {
	id, err := s.findPostID(subject)
	if err != nil {
		return err
	}
	return s.get(fmt.Sprintf("/post/read?content_id=%d", id))
}

func (s *StepsContext) iVisit(path string) error {
	return s.get(path)
}

func (s *StepsContext) iSubmitWithoutToken() error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("subject", "untrusted")
	_ = writer.WriteField("text", "untrusted")
	if err := writer.Close(); err != nil {
		return err
	}

	resp, err := s.client.Post(
		s.tc.ServerURL+"/post/write",
		writer.FormDataContentType(),
		&buf,
	)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) responseStatusShouldBe(status int) error {
	if s.lastStatus != status {
		return fmt.Errorf("expected status %d, got %d\nbody: %s", status, s.lastStatus, s.lastBody)
	}
	return nil
}

func (s *StepsContext) iShouldBeRedirectedTo(location string) error {
	if s.lastStatus < 300 || s.lastStatus >= 400 {
		return fmt.Errorf("expected a redirect, got status %d", s.lastStatus)
	}
	got := s.lastHeader.Get("Location")
	if !strings.HasPrefix(got, location) {
		return fmt.Errorf("expected redirect to %q, got %q", location, got)
	}
	return nil
}

func (s *StepsContext) iShouldSee(text string) error {
	if !strings.Contains(s.lastBody, text) {
		return fmt.Errorf("expected body to contain %q", text)
	}
	return nil
}

func (s *StepsContext) postShouldExist(subject string) error {
	_, err := s.findPostID(subject)
	return err
}

func (s *StepsContext) postShouldNotExist(subject string) error {
	var count int64
	if err := s.tc.DB.Model(&model.Content{}).Where("subject = ?", subject).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("post %q still exists", subject)
	}
	return nil
}
