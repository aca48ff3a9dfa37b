/*
Copyright 2024 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"sigs.k8s.io/yaml"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
)

func printReport(w io.Writer, report *apiv1.SweepReport, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		var rows [][]string
		for _, k := range report.Kinds {
			rows = append(rows, []string{
				k.Kind.String(),
				fmt.Sprintf("%d", k.Listed),
				fmt.Sprintf("%d", k.Deleted),
				fmt.Sprintf("%d", k.Failed),
			})
		}
		img := report.Images
		rows = append(rows,
			[]string{"Image", fmt.Sprintf("%d", img.Matched), fmt.Sprintf("%d", img.LocalRemoved), fmt.Sprintf("%d", img.LocalFailed)},
			[]string{"RegistryTag", fmt.Sprintf("%d", img.Matched), fmt.Sprintf("%d", img.RemoteRemoved), fmt.Sprintf("%d", img.RemoteFailed)},
		)
		printTable(w, []string{"kind", "listed", "removed", "failed"}, rows)
		return nil
	}
}

func printTable(writer io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
