package zfs

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	gozfs "github.com/mistifyio/go-zfs"
	"pratdiff/internal/logging"
	"pratdiff/internal/util"
)

const snapshotsDir = ".zfs/snapshot"

// SnapshotPath returns the path under which the given file is visible in the named snapshot of
// the ZFS filesystem it lives on
func SnapshotPath(path string, snapshot string) (string, error) {
	if util.IsBlank(snapshot) {
		return "", fmt.Errorf("snapshot name must not be empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	datasets, err := gozfs.Filesystems("")
	if err != nil {
		return "", fmt.Errorf("unable to list ZFS filesystems: %w", err)
	}
	dataset := FindHostDataset(datasets, absPath)
	if dataset == nil {
		return "", fmt.Errorf("%s is not located on a mounted ZFS filesystem", path)
	}
	logging.Debug("Found host dataset %s mounted at %s", dataset.Name, dataset.Mountpoint)

	snapshots, err := dataset.Snapshots()
	if err != nil {
		return "", fmt.Errorf("unable to list snapshots of %s: %w", dataset.Name, err)
	}
	names := SnapshotNames(snapshots, dataset.Name)
	if !slices.Contains(names, snapshot) {
		return "", fmt.Errorf("snapshot %s@%s does not exist, available: %s",
			dataset.Name, snapshot, strings.Join(names, ", "))
	}

	return resolveSnapshotPath(dataset.Mountpoint, absPath, snapshot)
}

// FindHostDataset returns the mounted dataset with the longest mountpoint containing path
func FindHostDataset(datasets []*gozfs.Dataset, path string) *gozfs.Dataset {
	var result *gozfs.Dataset
	depth := -1
	pathComponents := util.SplitPath(path)
	for _, dataset := range datasets {
		if !filepath.IsAbs(dataset.Mountpoint) {
			// "none", "legacy" or "-"
			continue
		}
		mountComponents := util.SplitPath(dataset.Mountpoint)
		if len(mountComponents) > len(pathComponents) ||
			!slices.Equal(pathComponents[:len(mountComponents)], mountComponents) {
			continue
		}
		if len(mountComponents) > depth {
			result = dataset
			depth = len(mountComponents)
		}
	}
	return result
}

// SnapshotNames returns the short names of the snapshots taken of exactly the given dataset
func SnapshotNames(snapshots []*gozfs.Dataset, datasetName string) []string {
	var result []string
	for _, snapshot := range snapshots {
		name, snapshotName, found := strings.Cut(snapshot.Name, "@")
		if found && name == datasetName {
			result = append(result, snapshotName)
		}
	}
	slices.Sort(result)
	return result
}

func resolveSnapshotPath(mountpoint string, path string, snapshot string) (string, error) {
	rel, err := filepath.Rel(mountpoint, path)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not below %s", path, mountpoint)
	}
	return filepath.Join(mountpoint, filepath.FromSlash(snapshotsDir), snapshot, rel), nil
}
