package cloudsql

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// AdminClient manages the read replicas of primaries in one project through
// the Cloud SQL Admin API.
type AdminClient struct {
	*Client
	logger   lager.Logger
	project  string
	region   string
	template ReplicaTemplate
}

func NewAdminClient(client *Client, project string, region string, template ReplicaTemplate, logger lager.Logger) *AdminClient {
	return &AdminClient{
		Client:   client,
		logger:   logger.Session("cloudsql-admin"),
		project:  project,
		region:   region,
		template: template,
	}
}

func (a *AdminClient) instancesURL() string {
	return fmt.Sprintf("%s/v1/projects/%s/instances", a.conf.AdminAPIURL, url.PathEscape(a.project))
}

// ListReplicas returns every instance whose master reference is the primary.
// Instances already being deleted are left out.
func (a *AdminClient) ListReplicas(ctx context.Context, primary string) ([]models.ReplicaRecord, error) {
	logger := a.logger.Session("list-replicas", lager.Data{"primary": primary})
	primaryRef := models.InstanceRef{Project: a.project, Instance: primary}

	instances, err := a.listInstances(ctx)
	if err != nil {
		logger.Error("failed-to-list-instances", err)
		return nil, err
	}

	replicas := []models.ReplicaRecord{}
	for _, instance := range instances {
		if instance.MasterInstanceName == "" {
			continue
		}
		masterRef := models.ParseInstanceRef(instance.MasterInstanceName)
		if masterRef.Project == "" {
			masterRef.Project = a.project
		}
		if !masterRef.Matches(primaryRef) {
			continue
		}
		if instance.State == models.InstanceStatePendingDelete {
			logger.Debug("skip-replica-pending-delete", lager.Data{"replica": instance.Name})
			continue
		}

		createdAt, err := time.Parse(time.RFC3339Nano, instance.CreateTime)
		if err != nil && instance.CreateTime != "" {
			logger.Info("invalid-create-time", lager.Data{"replica": instance.Name, "createTime": instance.CreateTime})
		}
		replicas = append(replicas, models.ReplicaRecord{
			Name:                instance.Name,
			PrimaryName:         primary,
			CreatedAt:           createdAt,
			ManagedByController: models.IsManagedReplica(primaryRef, instance.Name, masterRef),
			State:               instance.State,
		})
	}
	logger.Debug("listed-replicas", lager.Data{"count": len(replicas)})
	return replicas, nil
}

func (a *AdminClient) listInstances(ctx context.Context) ([]DatabaseInstance, error) {
	var instances []DatabaseInstance
	pageToken := ""
	for pageNumber := 1; ; pageNumber++ {
		listURL := a.instancesURL()
		if pageToken != "" {
			listURL += "?pageToken=" + url.QueryEscape(pageToken)
		}
		page := InstancesListResponse{}
		if err := a.get(ctx, listURL, &page); err != nil {
			return nil, fmt.Errorf("failed getting page %d: %w", pageNumber, err)
		}
		instances = append(instances, page.Items...)
		if page.NextPageToken == "" {
			return instances, nil
		}
		pageToken = page.NextPageToken
	}
}

func (a *AdminClient) CreateReplica(ctx context.Context, primary string, name string) (models.OperationHandle, error) {
	body := DatabaseInstance{
		Name:               name,
		Region:             a.region,
		DatabaseVersion:    a.template.DatabaseVersion,
		MasterInstanceName: primary,
		Settings: &Settings{
			Tier: a.template.Tier,
			IPConfiguration: &IPConfiguration{
				IPv4Enabled: a.template.IPv4Enabled,
				RequireSSL:  a.template.RequireSSL,
			},
			UserLabels: map[string]string{ManagedByLabel: ManagedByLabelValue},
		},
		ReplicaConfiguration: &ReplicaConfiguration{FailoverTarget: false},
	}

	op := Operation{}
	if err := a.post(ctx, a.instancesURL(), body, &op); err != nil {
		return models.OperationHandle{}, err
	}
	a.logger.Info("create-replica-submitted", lager.Data{"primary": primary, "replica": name, "operation": op.Name})
	return models.OperationHandle{Name: op.Name, Status: op.Status}, nil
}

func (a *AdminClient) DeleteReplica(ctx context.Context, name string) (models.OperationHandle, error) {
	op := Operation{}
	if err := a.delete(ctx, a.instancesURL()+"/"+url.PathEscape(name), &op); err != nil {
		return models.OperationHandle{}, err
	}
	a.logger.Info("delete-replica-submitted", lager.Data{"replica": name, "operation": op.Name})
	return models.OperationHandle{Name: op.Name, Status: op.Status}, nil
}
