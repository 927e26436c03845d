package client

import (
	"fmt"
	"net/http"
	"text/tabwriter"

	"gsc/internal/api"
	"gsc/internal/log"
)

// AdminExtend moves a submission's due date (or its self-eval due date)
// for one user.
func (c *Client) AdminExtend(user string, hw int, datespec string, eval bool) error {
	when, err := api.ParseTimestamp(datespec)
	if err != nil {
		return err
	}

	uri, err := c.submissionURI(user, hw)
	if err != nil {
		return err
	}

	var change api.SubmissionChange
	if eval {
		change.EvalDate = &when
	} else {
		change.DueDate = &when
	}
	if err := c.sendJSON(http.MethodPatch, uri, change); err != nil {
		return err
	}
	log.Info("Extended hw%d for %s until %s.", hw, user, when)
	return nil
}

// AdminSetExam records an exam grade on a user's account.
func (c *Client) AdminSetExam(user string, number, points, possible int) error {
	change := api.UserChange{
		ExamGrades: []api.ExamGrade{{
			Number:   number,
			Points:   points,
			Possible: possible,
		}},
	}
	if err := c.sendJSON(http.MethodPatch, c.userURI(user), &change); err != nil {
		return err
	}
	log.Info("Recorded exam %d for %s: %d/%d.", number, user, points, possible)
	return nil
}

// AdminDivorce dissolves the partnership on a submission by clearing
// its second owner.
func (c *Client) AdminDivorce(user string, hw int) error {
	uri, err := c.submissionURI(user, hw)
	if err != nil {
		return err
	}

	change := api.SubmissionChange{RemoveOwner2: true}
	if err := c.sendJSON(http.MethodPatch, uri, change); err != nil {
		return err
	}
	log.Info("Dissolved partnership on hw%d for %s.", hw, user)
	return nil
}

// AdminListUsers prints every account with its role.
func (c *Client) AdminListUsers() error {
	var users []api.User
	if err := c.getJSON(c.config.Endpoint+"/api/users", &users); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, user := range users {
		fmt.Fprintf(tw, "%s\t%s\n", user.Name, user.Role)
	}
	return tw.Flush()
}
