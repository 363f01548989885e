package cloudsql

type (
	DatabaseInstance struct {
		Name                 string                `json:"name"`
		Project              string                `json:"project,omitempty"`
		Region               string                `json:"region,omitempty"`
		DatabaseVersion      string                `json:"databaseVersion,omitempty"`
		State                string                `json:"state,omitempty"`
		InstanceType         string                `json:"instanceType,omitempty"`
		MasterInstanceName   string                `json:"masterInstanceName,omitempty"`
		CreateTime           string                `json:"createTime,omitempty"`
		Settings             *Settings             `json:"settings,omitempty"`
		ReplicaConfiguration *ReplicaConfiguration `json:"replicaConfiguration,omitempty"`
	}

	Settings struct {
		Tier            string            `json:"tier,omitempty"`
		IPConfiguration *IPConfiguration  `json:"ipConfiguration,omitempty"`
		UserLabels      map[string]string `json:"userLabels,omitempty"`
	}

	IPConfiguration struct {
		IPv4Enabled bool `json:"ipv4Enabled"`
		RequireSSL  bool `json:"requireSsl"`
	}

	ReplicaConfiguration struct {
		FailoverTarget bool `json:"failoverTarget"`
	}

	InstancesListResponse struct {
		Items         []DatabaseInstance `json:"items"`
		NextPageToken string             `json:"nextPageToken"`
	}

	Operation struct {
		Name          string `json:"name"`
		Status        string `json:"status"`
		OperationType string `json:"operationType"`
		TargetID      string `json:"targetId"`
	}

	TimeSeriesListResponse struct {
		TimeSeries    []TimeSeries `json:"timeSeries"`
		NextPageToken string       `json:"nextPageToken"`
	}

	TimeSeries struct {
		Metric   MetricDescriptor `json:"metric"`
		Resource MetricResource   `json:"resource"`
		Points   []Point          `json:"points"`
	}

	MetricDescriptor struct {
		Type   string            `json:"type"`
		Labels map[string]string `json:"labels"`
	}

	MetricResource struct {
		Type   string            `json:"type"`
		Labels map[string]string `json:"labels"`
	}

	// Point values are typed by field: int64 values arrive as JSON strings.
	Point struct {
		Value TypedValue `json:"value"`
	}

	TypedValue struct {
		DoubleValue *float64 `json:"doubleValue,omitempty"`
		Int64Value  *int64   `json:"int64Value,string,omitempty"`
	}
)

func (v TypedValue) Float64() (float64, bool) {
	switch {
	case v.DoubleValue != nil:
		return *v.DoubleValue, true
	case v.Int64Value != nil:
		return float64(*v.Int64Value), true
	}
	return 0, false
}
