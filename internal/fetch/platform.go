package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	PlatformGreenhouse  Platform = "greenhouse"
	PlatformLever       Platform = "lever"
	PlatformWorkday     Platform = "workday"
	PlatformLinkedIn    Platform = "linkedin"
	PlatformAshby       Platform = "ashby"
	PlatformInternshala Platform = "internshala"
	PlatformNaukri      Platform = "naukri"
	PlatformWellfound   Platform = "wellfound"
	PlatformUnknown     Platform = "unknown"
)

// board describes how to recognize a job board and where its posting text lives.
type board struct {
	platform Platform
	hosts    []string // matched as the host or a parent domain of it
	path     string   // required path prefix, if any
	content  []string
	noise    []string
}

var boards = []board{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".WDXK", ".gwt-HTML", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section", ".WDAF"},
	},
	{
		platform: PlatformLinkedIn,
		hosts:    []string{"linkedin.com"},
		path:     "/jobs",
		content:  []string{".show-more-less-html__markup", ".description__text", ".jobs-description__content"},
		noise:    []string{".show-more-less-html__button", ".top-card-layout__cta-container", ".similar-jobs"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", "[class*='_description']", "main"},
	},
	{
		platform: PlatformInternshala,
		hosts:    []string{"internshala.com"},
		content:  []string{".internship_details", ".detail_view", "#details_container"},
		noise:    []string{".similar_internships_container", ".apply_now_button", "#easy_apply_modal"},
	},
	{
		platform: PlatformNaukri,
		hosts:    []string{"naukri.com"},
		content:  []string{"[class*='job-desc']", ".dang-inner-html", "section.job-desc"},
		noise:    []string{"[class*='apply-button']", "[class*='similar-jobs']"},
	},
	{
		platform: PlatformWellfound,
		hosts:    []string{"wellfound.com", "angel.co"},
		content:  []string{"[class*='description']", "main"},
		noise:    []string{"[class*='applyButton']"},
	},
}

// commonNoise is removed from every posting regardless of platform.
var commonNoise = []string{
	// application forms
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",

	// EEO and legal
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",

	// sharing and consent
	".social-share",
	".share-buttons",
	".social-links",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func lookup(platform Platform) (board, bool) {
	for _, b := range boards {
		if b.platform == platform {
			return b, true
		}
	}
	return board{}, false
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for _, b := range boards {
		if b.path != "" && !strings.HasPrefix(parsed.Path, b.path) {
			continue
		}
		for _, domain := range b.hosts {
			if hostMatches(host, domain) {
				return b.platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform, most specific first.
// Unknown platforms get the generic job posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	if b, ok := lookup(platform); ok && len(b.content) > 0 {
		return append([]string(nil), b.content...)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the common noise selectors plus the platform's own.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string(nil), commonNoise...)
	if b, ok := lookup(platform); ok {
		out = append(out, b.noise...)
	}
	return out
}
