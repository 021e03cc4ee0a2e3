package teamcity

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

type xmlProjects struct {
	XMLName  xml.Name     `xml:"projects"`
	Projects []xmlProject `xml:"project"`
}

type xmlProject struct {
	ID              string `xml:"id,attr"`
	Name            string `xml:"name,attr"`
	ParentProjectID string `xml:"parentProjectId,attr"`
}

type xmlBuildTypes struct {
	XMLName    xml.Name       `xml:"buildTypes"`
	BuildTypes []xmlBuildType `xml:"buildType"`
}

type xmlBuildType struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	ProjectID   string `xml:"projectId,attr"`
	ProjectName string `xml:"projectName,attr"`
}

type xmlBuilds struct {
	XMLName xml.Name   `xml:"builds"`
	Count   int        `xml:"count,attr"`
	Builds  []xmlBuild `xml:"build"`
}

type xmlBuild struct {
	XMLName            xml.Name        `xml:"build"`
	ID                 string          `xml:"id,attr"`
	Number             string          `xml:"number,attr"`
	Status             string          `xml:"status,attr"`
	State              string          `xml:"state,attr"`
	Running            string          `xml:"running,attr"`
	PercentageComplete string          `xml:"percentageComplete,attr"`
	BranchName         string          `xml:"branchName,attr"`
	Href               string          `xml:"href,attr"`
	WebURL             string          `xml:"webUrl,attr"`
	RunningInfo        *xmlRunningInfo `xml:"running-info"`
	StatusText         string          `xml:"statusText"`
	BuildType          *xmlBuildType   `xml:"buildType"`
}

type xmlRunningInfo struct {
	PercentageComplete string `xml:"percentageComplete,attr"`
}

type xmlQueueRequest struct {
	XMLName    xml.Name         `xml:"build"`
	BranchName string           `xml:"branchName,attr,omitempty"`
	BuildType  xmlBuildTypeID   `xml:"buildType"`
	Properties *xmlPropertyList `xml:"properties,omitempty"`
}

type xmlBuildTypeID struct {
	ID string `xml:"id,attr"`
}

type xmlPropertyList struct {
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

func decodeXML(body string, v any) error {
	if err := xml.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("could not parse server response: %w", err)
	}
	return nil
}

// decodeBuilds accepts either a <builds> list or a single <build> element.
func decodeBuilds(body string) ([]xmlBuild, error) {
	var list xmlBuilds
	listErr := xml.Unmarshal([]byte(body), &list)
	if listErr == nil {
		return list.Builds, nil
	}
	var single xmlBuild
	if err := xml.Unmarshal([]byte(body), &single); err != nil {
		return nil, fmt.Errorf("could not parse server response: %w", listErr)
	}
	return []xmlBuild{single}, nil
}

func (b xmlBuild) toStatus() *BuildStatus {
	status := &BuildStatus{
		ID:         b.ID,
		Number:     b.Number,
		StatusText: strings.TrimSpace(b.StatusText),
		BranchName: b.BranchName,
		Href:       b.Href,
		WebURL:     b.WebURL,
	}
	if b.BuildType != nil {
		status.BuildTypeID = b.BuildType.ID
		status.ProjectName = b.BuildType.ProjectName
	}

	switch strings.ToLower(b.State) {
	case "queued":
		status.IsRunning = true
		status.Status = StatusQueued
	case "running":
		status.IsRunning = true
	case "finished":
		status.IsRunning = false
	default:
		status.IsRunning = strings.EqualFold(b.Running, "true")
	}

	if !status.IsRunning {
		status.Status = BuildState(strings.ToLower(b.Status))
		status.PercentComplete = 100
		return status
	}

	if status.Status == "" {
		status.Status = StatusRunning
	}
	percent := b.PercentageComplete
	if b.RunningInfo != nil && b.RunningInfo.PercentageComplete != "" {
		percent = b.RunningInfo.PercentageComplete
	}
	if n, err := strconv.Atoi(percent); err == nil {
		status.PercentComplete = clampPercent(n)
	}
	return status
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
