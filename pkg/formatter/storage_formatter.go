package formatter

import (
	"fmt"
	"sort"

	"stratus/pkg/storage"
)

type StorageFormatter struct{}

func NewStorageFormatter() *StorageFormatter {
	return &StorageFormatter{}
}

func (f *StorageFormatter) FormatContainerList(containers []storage.Container) string {
	table := NewTable([]string{"BUCKET NAME", "PROVIDER", "LOCATION", "STORAGE CLASS", "CREATED"})

	for _, container := range containers {
		table.AddRow([]string{
			container.Name,
			string(container.Provider),
			container.ExtraString("location"),
			container.ExtraString("storageClass"),
			container.ExtraString("timeCreated"),
		})
	}

	return table.String()
}

func (f *StorageFormatter) FormatContainerDetails(container storage.Container) string {
	var result string

	result += FormatHeaderSection("Bucket: " + container.Name)
	result += "\n\n"

	result += FormatSectionTitle("Overview")
	result += "\n"

	overviewTable := NewTable([]string{"Parameter", "Value"})

	details := []struct {
		Key   string
		Value string
	}{
		{"Provider", string(container.Provider)},
		{"Location", container.ExtraString("location")},
		{"Storage Class", container.ExtraString("storageClass")},
		{"Created On", container.ExtraString("timeCreated")},
		{"Updated On", container.ExtraString("updated")},
	}

	for _, detail := range details {
		if detail.Value == "" {
			continue
		}
		overviewTable.AddRow([]string{detail.Key, detail.Value})
	}

	result += overviewTable.String()
	result += "\n"

	return result
}

func (f *StorageFormatter) FormatObjectList(objects []storage.Object) string {
	table := NewTable([]string{"OBJECT NAME", "SIZE", "MD5", "UPDATED"})

	for _, obj := range objects {
		table.AddRow([]string{
			obj.Name,
			storage.FormatBytes(obj.Size),
			obj.Hash,
			obj.ExtraString("updated"),
		})
	}

	return table.String()
}

func (f *StorageFormatter) FormatObjectDetails(obj storage.Object) string {
	var result string

	result += FormatHeaderSection(fmt.Sprintf("Object: %s/%s", obj.ContainerName, obj.Name))
	result += "\n\n"

	result += FormatSectionTitle("Overview")
	result += "\n"

	overviewTable := NewTable([]string{"Parameter", "Value"})

	details := []struct {
		Key   string
		Value string
	}{
		{"Provider", string(obj.Provider)},
		{"Bucket", obj.ContainerName},
		{"Size", storage.FormatBytes(obj.Size)},
		{"MD5 Hash", obj.Hash},
		{"Content Type", obj.ExtraString("contentType")},
		{"Storage Class", obj.ExtraString("storageClass")},
		{"Created On", obj.ExtraString("timeCreated")},
		{"Updated On", obj.ExtraString("updated")},
	}

	for _, detail := range details {
		if detail.Value == "" {
			continue
		}
		overviewTable.AddRow([]string{detail.Key, detail.Value})
	}

	result += overviewTable.String()
	result += "\n"

	if len(obj.MetaData) > 0 {
		result += "\n"
		result += FormatSectionTitle("Metadata")
		result += "\n"

		keys := make([]string, 0, len(obj.MetaData))
		for k := range obj.MetaData {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		metaTable := NewTable([]string{"Key", "Value"})
		for _, k := range keys {
			metaTable.AddRow([]string{k, obj.MetaData[k]})
		}
		result += metaTable.String()
		result += "\n"
	}

	return result
}
