package notify

import (
	"fmt"
	"strings"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/params"
)

func statusPage(httpAddress string) string {
	return strings.TrimRight(httpAddress, "/") + "/orupdate"
}

func checkPage(httpAddress, obsidRev string) string {
	return strings.TrimRight(httpAddress, "/") + "/chkupdata/" + obsidRev
}

func pageLinks(httpAddress, obsidRev string) string {
	return fmt.Sprintf("Parameter Status Page: %s\nParameter Check Page: %s\n",
		statusPage(httpAddress), checkPage(httpAddress, obsidRev))
}

// ApprovalStateMessage reports an asis or remove submission to the
// submitting user. Other kinds produce no message.
func ApprovalStateMessage(ocat map[string]interface{}, obsidRev, kind string, user *model.User, httpAddress string) *Message {
	var b strings.Builder
	for _, param := range []string{"obsid", "seq_nbr", "targname"} {
		fmt.Fprintf(&b, "%s = %v\n", params.Label(param), ocat[param])
	}
	fmt.Fprintf(&b, "User = %s\n", user.Username)

	var subject string
	switch kind {
	case model.KindAsis:
		subject = fmt.Sprintf("Parameter Change Log: %s (Approved)", obsidRev)
		b.WriteString("VERIFIED OK AS IS\n")
	case model.KindRemove:
		subject = fmt.Sprintf("Parameter Change Log: %s (Removed)", obsidRev)
		b.WriteString("VERIFIED REMOVED\n")
	default:
		return nil
	}

	fmt.Fprintf(&b, "PAST COMMENTS = \n%s\n\n", stringValue(ocat["comments"]))
	fmt.Fprintf(&b, "PAST REMARKS = \n%s\n\n", stringValue(ocat["remarks"]))
	b.WriteString(pageLinks(httpAddress, obsidRev))

	return NewMessage(subject, b.String(), []string{user.Email})
}

// SignoffMessage routes a TOO/DDT signoff to the desk that should act next.
// It returns nil when the observation is not a TOO/DDT or no desk is
// waiting.
func SignoffMessage(ocat map[string]interface{}, rev *model.Revision, sign *model.Signoff, actor *model.User, httpAddress string) *Message {
	obsType := stringValue(ocat["obs_type"])
	if obsType != "TOO" && obsType != "DDT" {
		return nil
	}

	arcopsDone := sign.GeneralStatus != model.StatusPending && sign.AcisStatus != model.StatusPending
	instrumentDone := sign.AcisSiStatus != model.StatusPending && sign.HrcSiStatus != model.StatusPending
	usintDone := sign.UsintStatus != model.StatusPending

	obsidRev := rev.ObsidRev()
	obsid := ocat["obsid"]

	switch {
	case arcopsDone && !instrumentDone:
		subject := fmt.Sprintf("%s SI Mode Sign Off Request: (Obsid: %v)", obsType, obsid)
		body := fmt.Sprintf("Editing of General/ACIS entries of %s were finished and signed off.\n", obsidRev) +
			"Please update SI Mode entries, then sign off.\n" +
			pageLinks(httpAddress, obsidRev)

		to := ACIS
		if instrument := stringValue(ocat["instrument"]); instrument == "HRC-I" || instrument == "HRC-S" {
			to = HRC
		}
		return NewMessage(subject, body, []string{to})

	case !arcopsDone && instrumentDone:
		subject := fmt.Sprintf("%s General/ACIS Sign Off Request: (Obsid: %v)", obsType, obsid)
		body := fmt.Sprintf("Editing of SI Mode entries of %s were finished and signed off.\n", obsidRev) +
			"Please update General/ACIS entries, then sign off.\n" +
			pageLinks(httpAddress, obsidRev)
		return NewMessage(subject, body, []string{ARCOPS})

	case arcopsDone && instrumentDone && !usintDone:
		subject := fmt.Sprintf("%s Usint Sign Off Request: (Obsid: %v)", obsType, obsid)
		body := fmt.Sprintf("Editing of all entries of %s were finished and signed off.\n", obsidRev) +
			"Please verify and signoff.\n" +
			pageLinks(httpAddress, obsidRev)

		to := []string{actor.Email}
		if rev.User != nil && rev.User.Email != actor.Email {
			to = append([]string{rev.User.Email}, to...)
		}
		return NewMessage(subject, body, to)
	}

	return nil
}

func stringValue(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
