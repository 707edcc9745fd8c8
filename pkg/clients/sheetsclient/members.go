package sheetsclient

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lucasmdrs/escala/internal/config"
)

// Expected column names in the members sheet
var memberFields = []string{
	"Member ID",
	"Full name",
	"Email",
	"Status",
}

// Member is one row of the members sheet
type Member struct {
	ID     string
	Name   string
	Email  string
	Status string
}

// ListMembers retrieves and parses members from the configured spreadsheet
func (c *Client) ListMembers(cfg *config.Config) ([]Member, error) {
	values, err := c.GetValues(cfg.MembersSheetID, cfg.MembersTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get member data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("members sheet is empty")
	}

	members, err := parseMembers(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse members: %w", err)
	}

	return members, nil
}

// parseMembers converts raw spreadsheet data into Member structs
func parseMembers(raw [][]interface{}) ([]Member, error) {
	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range memberFields {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && cellStr == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index := fieldIndexes[field]
		if index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return str
		}
		return ""
	}

	members := make([]Member, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		id := getField("Member ID", row)
		// Skip empty rows
		if id == "" {
			continue
		}

		members = append(members, Member{
			ID:     id,
			Name:   getField("Full name", row),
			Email:  getField("Email", row),
			Status: getField("Status", row),
		})
	}

	return members, nil
}

// Directory implements the member directory over the members sheet.
// The sheet is fetched once on first use and cached for the process
// lifetime; a CLI invocation is short enough that staleness is not a
// concern.
type Directory struct {
	client *Client
	cfg    *config.Config

	once    sync.Once
	loadErr error
	byID    map[string]Member
}

// NewDirectory creates a member directory backed by the members sheet
func NewDirectory(client *Client, cfg *config.Config) *Directory {
	return &Directory{
		client: client,
		cfg:    cfg,
	}
}

func (d *Directory) load() error {
	d.once.Do(func() {
		members, err := d.client.ListMembers(d.cfg)
		if err != nil {
			d.loadErr = err
			return
		}
		d.byID = make(map[string]Member, len(members))
		for _, m := range members {
			d.byID[m.ID] = m
		}
	})
	return d.loadErr
}

// ResolveMemberName returns the display name for a member id
func (d *Directory) ResolveMemberName(memberID string) (string, error) {
	member, err := d.lookup(memberID)
	if err != nil {
		return "", err
	}
	return member.Name, nil
}

// MemberEmail returns the delivery address for a member id
func (d *Directory) MemberEmail(memberID string) (string, error) {
	member, err := d.lookup(memberID)
	if err != nil {
		return "", err
	}
	if member.Email == "" {
		return "", fmt.Errorf("member %s has no email", memberID)
	}
	return member.Email, nil
}

func (d *Directory) lookup(memberID string) (Member, error) {
	if err := d.load(); err != nil {
		return Member{}, err
	}

	member, ok := d.byID[memberID]
	if !ok {
		return Member{}, fmt.Errorf("member %s not found in members sheet", memberID)
	}
	if !strings.EqualFold(member.Status, "Active") {
		return Member{}, fmt.Errorf("member %s is not active", memberID)
	}
	return member, nil
}
